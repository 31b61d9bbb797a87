package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
	createBooking "github.com/m04kA/SMC-TrainingPortal/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "date must be in YYYY-MM-DD format"
	msgDateInPast         = "date is in the past"
	msgSlotNotAvailable   = "This slot is no longer available."
)

type Handler struct {
	useCase  UseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase UseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: %v", err)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, credits.ErrNoCreditsAvailable):
			h.logger.Warn("POST /bookings - No credits available")
			handlers.RespondConflict(w, domain.NoCreditsMessage)

		case errors.Is(err, bookings.ErrValidationFailed):
			h.logger.Warn("POST /bookings - Rejected by studio: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondUnprocessable(w, bookings.UserMessage(err))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondError(w, http.StatusBadGateway, bookings.UserMessage(err))
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d", resp.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp, h.location))
}
