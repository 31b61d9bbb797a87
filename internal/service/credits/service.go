package credits

import (
	"context"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Service загружает абонементы пользователя. Счетчики не хранятся, все выводится из свежего списка.
type Service struct {
	client SubscriptionsClient
	logger Logger
}

// NewService создает новый экземпляр сервиса абонементов
func NewService(client SubscriptionsClient, logger Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Load загружает все абонементы. При ошибке загрузки возвращает пустой список и degraded=true.
func (s *Service) Load(ctx context.Context) (subs []domain.Subscription, degraded bool) {
	subs, err := s.client.ListSubscriptions(ctx)
	if err != nil {
		s.logger.Warn("LoadSubscriptions: failed to load subscriptions, treating as empty: %v", err)
		return []domain.Subscription{}, true
	}

	s.logger.Info("LoadSubscriptions: loaded %d subscriptions", len(subs))
	return subs, false
}
