package get_packages

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

// Handle GET /api/v1/packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	groups, degraded := h.service.PackagesByCategory(r.Context())

	response := FromCategoryGroups(groups, degraded)

	h.logger.Info("GET /packages - Packages retrieved: categories=%d, degraded=%t", len(response.Categories), degraded)
	handlers.RespondJSON(w, http.StatusOK, response)
}
