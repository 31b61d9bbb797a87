package cancel_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
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

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	serviceReq := req.ToServiceRequest()

	// Окно изменения проверяется по актуальной записи
	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /bookings/{id}/cancel - Failed to load booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondError(w, http.StatusBadGateway, bookings.UserMessage(err))
		return
	}

	canceled, err := h.service.Cancel(r.Context(), booking, serviceReq.Reason)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrModificationWindowClosed):
			h.logger.Warn("POST /bookings/{id}/cancel - Modification window closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, domain.ModificationWindowClosedMessage)

		case errors.Is(err, bookings.ErrBookingCanceled):
			h.logger.Warn("POST /bookings/{id}/cancel - Already canceled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, domain.BookingCanceledMessage)

		case errors.Is(err, bookings.ErrValidationFailed):
			h.logger.Warn("POST /bookings/{id}/cancel - Rejected by studio: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, bookings.UserMessage(err))

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, bookings.UserMessage(err))
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking canceled successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(canceled, h.location))
}
