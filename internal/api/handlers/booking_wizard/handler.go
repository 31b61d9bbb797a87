package booking_wizard

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/sessions"
	"github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidWizardID    = "invalid wizard id"
	msgWizardNotFound     = "booking wizard not found or expired"
	msgInvalidMode        = "mode must be 'new' or 'reschedule'"
	msgMissingBookingID   = "bookingId is required to reschedule"
	msgInvalidBookingID   = "invalid booking id"
	msgBookingNotFound    = "booking not found"
	msgInvalidMonth       = "trainerId and a month between 1 and 12 are required"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgDateInPast         = "this date is in the past"
	msgInvalidSlotID      = "invalid slot id"
	msgSlotUnavailable    = "this slot is no longer available, choose another one"
	msgNotAllowed         = "this action is not available right now"
	msgNotReady           = "availability is still loading, try again in a moment"
	msgSubmitInProgress   = "your booking is already being submitted"
	msgSuperseded         = "a newer request replaced this one"
	msgTooManyWizards     = "too many open booking wizards, try again later"
)

// ViewErrorResponse ошибка вместе с текущим снимком мастера
type ViewErrorResponse struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	View    *models.ViewResponse `json:"view"`
}

type Handler struct {
	sessions SessionService
	bookings BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(sessions SessionService, bookings BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		bookings: bookings,
		location: location,
		logger:   logger,
	}
}

// Start POST /api/v1/wizards
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartWizardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizards - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	mode := req.ToDomainMode()
	if !mode.IsValid() {
		h.logger.Warn("POST /wizards - Invalid mode: %q", req.Mode)
		handlers.RespondBadRequest(w, msgInvalidMode)
		return
	}
	if req.Month < 0 || req.Month > 12 {
		h.logger.Warn("POST /wizards - Invalid month: %d", req.Month)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	cfg := wizard.Config{
		Mode:      mode,
		TrainerID: req.TrainerID,
		Year:      req.Year,
		Month:     time.Month(req.Month),
	}

	if mode == domain.ModeReschedule {
		if req.BookingID == nil {
			h.logger.Warn("POST /wizards - Missing booking ID for reschedule")
			handlers.RespondBadRequest(w, msgMissingBookingID)
			return
		}
		if *req.BookingID <= 0 {
			h.logger.Warn("POST /wizards - Invalid booking ID: %d", *req.BookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}

		booking, err := h.bookings.GetByID(r.Context(), *req.BookingID)
		if err != nil {
			if errors.Is(err, bookings.ErrBookingNotFound) {
				h.logger.Warn("POST /wizards - Booking not found: booking_id=%d", *req.BookingID)
				handlers.RespondNotFound(w, msgBookingNotFound)
				return
			}
			h.logger.Error("POST /wizards - Failed to load booking: booking_id=%d, error=%v", *req.BookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, bookings.UserMessage(err))
			return
		}
		cfg.Booking = booking
	}

	id, view, err := h.sessions.Start(r.Context(), cfg)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingCanceled):
			h.logger.Warn("POST /wizards - Booking canceled: booking_id=%d", *req.BookingID)
			handlers.RespondConflict(w, domain.BookingCanceledMessage)

		case errors.Is(err, bookings.ErrModificationWindowClosed):
			h.logger.Warn("POST /wizards - Modification window closed: booking_id=%d", *req.BookingID)
			handlers.RespondConflict(w, domain.ModificationWindowClosedMessage)

		case errors.Is(err, wizard.ErrInvalidConfig), errors.Is(err, get_available_slots.ErrInvalidInput):
			h.logger.Warn("POST /wizards - Invalid wizard config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, sessions.ErrTooManySessions):
			h.logger.Warn("POST /wizards - Too many wizards")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTooManyWizards)

		default:
			h.logger.Error("POST /wizards - Failed to start wizard: mode=%s, error=%v", mode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizards - Wizard started: wizard_id=%s, mode=%s, trainer_id=%d", id, mode, view.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromView(id.String(), view, h.location))
}

// Get GET /api/v1/wizards/{wizardId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r, "GET /wizards/{id}")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, models.FromView(id.String(), controller.View(), h.location))
}

// NavigateMonth PUT /api/v1/wizards/{wizardId}/month
func (h *Handler) NavigateMonth(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizards/{id}/month"

	id, controller, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	var req models.NavigateMonthRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.TrainerID <= 0 || req.Month < 1 || req.Month > 12 || req.Year <= 0 {
		h.logger.Warn("%s - Invalid month: trainer_id=%d, year=%d, month=%d", op, req.TrainerID, req.Year, req.Month)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	view, err := controller.NavigateMonth(r.Context(), req.TrainerID, req.Year, time.Month(req.Month))
	h.respond(w, op, id, view, err)
}

// SelectDate PUT /api/v1/wizards/{wizardId}/date
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizards/{id}/date"

	id, controller, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	var req models.SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := req.ParseDate(h.location)
	if err != nil {
		h.logger.Warn("%s - Invalid date %q: %v", op, req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	view, err := controller.SelectDate(date)
	h.respond(w, op, id, view, err)
}

// SelectSlot PUT /api/v1/wizards/{wizardId}/slot
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizards/{id}/slot"

	id, controller, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	var req models.SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.SlotID <= 0 {
		h.logger.Warn("%s - Invalid slot ID: %d", op, req.SlotID)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	view, err := controller.SelectSlot(req.SlotID)
	h.respond(w, op, id, view, err)
}

// Back POST /api/v1/wizards/{wizardId}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	const op = "POST /wizards/{id}/back"

	id, controller, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	view, err := controller.Back()
	h.respond(w, op, id, view, err)
}

// Confirm POST /api/v1/wizards/{wizardId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	const op = "POST /wizards/{id}/confirm"

	id, controller, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	view, err := controller.Confirm(r.Context())
	if err == nil && view.State.Result != nil {
		h.logger.Info("%s - Booking confirmed: wizard_id=%s, booking_id=%d", op, id, view.State.Result.ID)
	}
	h.respond(w, op, id, view, err)
}

// Reset POST /api/v1/wizards/{wizardId}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	const op = "POST /wizards/{id}/reset"

	id, controller, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	view, err := controller.BookAnother(r.Context())
	h.respond(w, op, id, view, err)
}

// Close DELETE /api/v1/wizards/{wizardId}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["wizardId"])
	if err != nil {
		h.logger.Warn("DELETE /wizards/{id} - Invalid wizard ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWizardID)
		return
	}

	if err := h.sessions.Close(r.Context(), id); err != nil {
		h.logger.Warn("DELETE /wizards/{id} - Wizard not found: wizard_id=%s", id)
		handlers.RespondNotFound(w, msgWizardNotFound)
		return
	}

	h.logger.Info("DELETE /wizards/{id} - Wizard closed: wizard_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, *wizard.Controller, bool) {
	id, err := uuid.Parse(mux.Vars(r)["wizardId"])
	if err != nil {
		h.logger.Warn("%s - Invalid wizard ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidWizardID)
		return uuid.Nil, nil, false
	}

	controller, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.logger.Warn("%s - Wizard not found: wizard_id=%s", op, id)
		handlers.RespondNotFound(w, msgWizardNotFound)
		return uuid.Nil, nil, false
	}
	return id, controller, true
}

// respond пишет снимок мастера; при ошибке снимок кладется рядом с сообщением
func (h *Handler) respond(w http.ResponseWriter, op string, id uuid.UUID, view wizard.View, err error) {
	resp := models.FromView(id.String(), view, h.location)
	if err == nil {
		handlers.RespondJSON(w, http.StatusOK, resp)
		return
	}

	status, message := h.classify(op, id, err)
	handlers.RespondJSON(w, status, ViewErrorResponse{Code: status, Message: message, View: resp})
}

func (h *Handler) classify(op string, id uuid.UUID, err error) (int, string) {
	switch {
	case errors.Is(err, bookings.ErrValidationFailed):
		h.logger.Warn("%s - Rejected by studio: wizard_id=%s, error=%v", op, id, err)
		return http.StatusUnprocessableEntity, bookings.UserMessage(err)

	case errors.Is(err, bookings.ErrModificationWindowClosed):
		h.logger.Warn("%s - Modification window closed: wizard_id=%s", op, id)
		return http.StatusConflict, domain.ModificationWindowClosedMessage

	case errors.Is(err, bookings.ErrBookingCanceled):
		h.logger.Warn("%s - Booking canceled: wizard_id=%s", op, id)
		return http.StatusConflict, domain.BookingCanceledMessage

	case errors.Is(err, wizard.ErrSubmitInProgress):
		h.logger.Warn("%s - Submit in progress: wizard_id=%s", op, id)
		return http.StatusConflict, msgSubmitInProgress

	case errors.Is(err, wizard.ErrSlotUnavailable):
		h.logger.Warn("%s - Slot unavailable: wizard_id=%s, error=%v", op, id, err)
		return http.StatusConflict, msgSlotUnavailable

	case errors.Is(err, wizard.ErrDateInPast):
		h.logger.Warn("%s - Date in past: wizard_id=%s, error=%v", op, id, err)
		return http.StatusBadRequest, msgDateInPast

	case errors.Is(err, wizard.ErrNotReady):
		h.logger.Warn("%s - Not ready: wizard_id=%s, error=%v", op, id, err)
		return http.StatusConflict, msgNotReady

	case errors.Is(err, wizard.ErrStaleResult):
		h.logger.Warn("%s - Superseded: wizard_id=%s", op, id)
		return http.StatusConflict, msgSuperseded

	case errors.Is(err, wizard.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: wizard_id=%s, error=%v", op, id, err)
		return http.StatusConflict, msgNotAllowed

	case errors.Is(err, get_available_slots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: wizard_id=%s, error=%v", op, id, err)
		return http.StatusBadRequest, msgInvalidMonth

	case errors.Is(err, wizard.ErrClosed):
		h.logger.Warn("%s - Wizard closed: wizard_id=%s", op, id)
		return http.StatusNotFound, msgWizardNotFound

	default:
		h.logger.Error("%s - Failed: wizard_id=%s, error=%v", op, id, err)
		return http.StatusBadGateway, bookings.UserMessage(err)
	}
}
