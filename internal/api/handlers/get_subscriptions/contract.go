package get_subscriptions

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

type SubscriptionService interface {
	Load(ctx context.Context) (subs []domain.Subscription, degraded bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
