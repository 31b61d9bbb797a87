package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// StudioClient интерфейс клиента API студии
type StudioClient interface {
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, slotID int64, subscriptionID *int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64, reason *string) (*domain.Booking, error)
	RescheduleBooking(ctx context.Context, bookingID, slotID int64) (*domain.Booking, error)
}

// Journal журнал попыток изменения записей
type Journal interface {
	Record(ctx context.Context, entry domain.JournalEntry) error
	ListByBooking(ctx context.Context, bookingID int64, limit uint64) ([]domain.JournalEntry, error)
}

// Metrics интерфейс для метрик
type Metrics interface {
	RecordBookingAction(action, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopJournal журнал, который ничего не хранит; используется при выключенной БД
type NopJournal struct{}

func (NopJournal) Record(context.Context, domain.JournalEntry) error { return nil }

func (NopJournal) ListByBooking(context.Context, int64, uint64) ([]domain.JournalEntry, error) {
	return []domain.JournalEntry{}, nil
}
