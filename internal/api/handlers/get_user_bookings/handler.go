package get_user_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
)

const (
	msgInvalidStatus = "status must be one of pending, confirmed, canceled"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := models.GetUserBookingsRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	var statusFilter *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid status: %q", *req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		statusFilter = &status
	}

	result, err := h.service.List(r.Context(), statusFilter)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get bookings: error=%v", err)
		handlers.RespondError(w, http.StatusBadGateway, bookings.UserMessage(err))
		return
	}

	response := models.FromDomainBookingList(result, h.location)

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(response.Bookings))
	handlers.RespondJSON(w, http.StatusOK, response)
}
