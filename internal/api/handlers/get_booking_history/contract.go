package get_booking_history

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

type BookingService interface {
	History(ctx context.Context, bookingID int64, limit uint64) ([]domain.JournalEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
