package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
)

const (
	msgInvalidTrainerID = "invalid trainer id"
	msgInvalidMonth     = "invalid month, expected YYYY-MM"
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgDateOutsideMonth = "date must be inside the requested month"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/slots
// Query params: month (optional, YYYY-MM), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	now := h.useCase.Now()
	useCaseReq, err := ToUseCaseRequest(trainerID, r.URL.Query().Get("month"), now)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/slots - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	var day *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, dateStr, h.useCase.Location())
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/slots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		if parsed.Year() != useCaseReq.Year || parsed.Month() != useCaseReq.Month {
			if r.URL.Query().Get("month") != "" {
				h.logger.Warn("GET /trainers/{id}/slots - Date %s outside month %04d-%02d", dateStr, useCaseReq.Year, int(useCaseReq.Month))
				handlers.RespondBadRequest(w, msgDateOutsideMonth)
				return
			}
			useCaseReq.Year, useCaseReq.Month = parsed.Year(), parsed.Month()
		}
		day = &parsed
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /trainers/{id}/slots - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		h.logger.Error("GET /trainers/{id}/slots - Failed to get slots: trainer_id=%d, error=%v", trainerID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(trainerID, result, day, now)

	h.logger.Info("GET /trainers/{id}/slots - Slots retrieved: trainer_id=%d, month=%s, slots_count=%d, degraded=%t",
		trainerID, response.Month, len(response.Slots), response.Degraded)
	handlers.RespondJSON(w, http.StatusOK, response)
}
