package credits

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// SubscriptionsClient интерфейс клиента API студии
type SubscriptionsClient interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
