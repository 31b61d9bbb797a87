package get_subscriptions

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
)

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subs, degraded := h.service.Load(r.Context())

	response := FromDomain(subs, degraded)

	h.logger.Info("GET /subscriptions - Subscriptions retrieved: count=%d, remaining_credits=%d, degraded=%t",
		response.Summary.Total, response.Summary.RemainingCredits, degraded)
	handlers.RespondJSON(w, http.StatusOK, response)
}
