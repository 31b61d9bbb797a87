package get_subscriptions

import (
	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard/models"
)

// SummaryResponse сводка по абонементам
type SummaryResponse struct {
	Total            int            `json:"total"`
	Eligible         int            `json:"eligible"`
	RemainingCredits int            `json:"remainingCredits"`
	ByStatus         map[string]int `json:"byStatus"`
}

// SubscriptionListResponse HTTP response model
type SubscriptionListResponse struct {
	Subscriptions []models.SubscriptionResponse `json:"subscriptions"`
	Summary       SummaryResponse               `json:"summary"`
	Notice        string                        `json:"notice,omitempty"`
	Degraded      bool                          `json:"degraded"`
}

// FromDomain конвертирует абонементы и сводку по ним
func FromDomain(subs []domain.Subscription, degraded bool) *SubscriptionListResponse {
	summary := credits.Summarize(subs)

	resp := &SubscriptionListResponse{
		Subscriptions: make([]models.SubscriptionResponse, 0, len(subs)),
		Summary: SummaryResponse{
			Total:            summary.Total,
			Eligible:         summary.Eligible,
			RemainingCredits: summary.RemainingCredits,
			ByStatus:         make(map[string]int, len(summary.ByStatus)),
		},
		Degraded: degraded,
	}

	for status, n := range summary.ByStatus {
		resp.Summary.ByStatus[string(status)] = n
	}
	for i := range subs {
		resp.Subscriptions = append(resp.Subscriptions, *models.FromDomainSubscription(&subs[i]))
	}
	if summary.Eligible == 0 && !degraded {
		resp.Notice = domain.NoCreditsMessage
	}

	return resp
}
