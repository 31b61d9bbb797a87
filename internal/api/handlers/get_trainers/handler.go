package get_trainers

import (
	"net/http"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers
// Ошибка загрузки не является ошибкой запроса: список пустой, degraded=true.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainers, degraded := h.service.Trainers(r.Context())

	h.logger.Info("GET /trainers - Trainers retrieved: count=%d, degraded=%t", len(trainers), degraded)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(trainers, degraded))
}
