package get_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgNotFound         = "booking not found"
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

// Handle GET /api/v1/bookings/{bookingId}
// Ответ содержит доступные действия: отмена и перенос закрываются за 24 часа до начала.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, bookings.UserMessage(err))
		}
		return
	}

	response := models.FromDomainBookingWithActions(booking, h.service.Now().In(h.location))

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%d, can_cancel=%t",
		bookingID, response.Actions.CanCancel)
	handlers.RespondJSON(w, http.StatusOK, response)
}
