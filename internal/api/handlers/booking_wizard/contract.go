package booking_wizard

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard"
)

type SessionService interface {
	Start(ctx context.Context, cfg wizard.Config) (uuid.UUID, wizard.View, error)
	Get(ctx context.Context, id uuid.UUID) (*wizard.Controller, error)
	Close(ctx context.Context, id uuid.UUID) error
}

type BookingService interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
