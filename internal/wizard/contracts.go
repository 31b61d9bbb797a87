package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
)

// SlotLoader загружает слоты месяца и знает текущее время в зоне пользователя
type SlotLoader interface {
	Execute(ctx context.Context, req get_available_slots.Request) (*get_available_slots.Response, error)
	Now() time.Time
}

// SubscriptionLoader загружает абонементы; при сбое возвращает пустой список и degraded
type SubscriptionLoader interface {
	Load(ctx context.Context) (subs []domain.Subscription, degraded bool)
}

// Lifecycle операции над записями
type Lifecycle interface {
	Create(ctx context.Context, slotID int64, subscriptionID *int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, booking *domain.Booking, newSlotID int64) (*domain.Booking, error)
}

// Metrics интерфейс для метрик
type Metrics interface {
	RecordWizardTransition(transition string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Deps зависимости контроллера
type Deps struct {
	Slots         SlotLoader
	Subscriptions SubscriptionLoader
	Lifecycle     Lifecycle
	Metrics       Metrics // может быть nil
	Logger        Logger
}

// Config параметры запуска мастера
type Config struct {
	Mode domain.BookingMode

	// Booking переносимая запись, обязательна в режиме reschedule
	Booking *domain.Booking

	// TrainerID в режиме reschedule по умолчанию берется из записи
	TrainerID int64

	// Year и Month стартового месяца; нули означают текущий месяц
	Year  int
	Month time.Month
}
