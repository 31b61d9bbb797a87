package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// SlotsClient интерфейс клиента API студии
type SlotsClient interface {
	// ListSlots загружает все слоты тренера за месяц (все страницы)
	ListSlots(ctx context.Context, trainerID int64, year int, month time.Month) ([]domain.Slot, error)
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
