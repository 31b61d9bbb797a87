package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// SlotsClient интерфейс для получения слотов тренера
type SlotsClient interface {
	ListSlots(ctx context.Context, trainerID int64, year int, month time.Month) ([]domain.Slot, error)
}

// SubscriptionLoader интерфейс для получения абонементов; при сбое возвращает пустой список и degraded
type SubscriptionLoader interface {
	Load(ctx context.Context) (subs []domain.Subscription, degraded bool)
}

// BookingCreator интерфейс создания записи
type BookingCreator interface {
	Create(ctx context.Context, slotID int64, subscriptionID *int64) (*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
