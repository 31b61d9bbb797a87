package get_booking_history

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgInvalidLimit     = "limit must be between 1 and 200"
	msgHistoryFailed    = "booking history is unavailable right now"

	maxLimit = 200
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/history
// Query params: limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/history - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var limit uint64
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.ParseUint(limitStr, 10, 64)
		if err != nil || limit == 0 || limit > maxLimit {
			h.logger.Warn("GET /bookings/{id}/history - Invalid limit: %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	entries, err := h.service.History(r.Context(), bookingID, limit)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/history - Failed to get history: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgHistoryFailed)
		return
	}

	h.logger.Info("GET /bookings/{id}/history - History retrieved: booking_id=%d, count=%d", bookingID, len(entries))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainJournal(bookingID, entries))
}
