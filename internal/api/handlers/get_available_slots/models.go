package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard/models"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TrainerID   int64                 `json:"trainerId"`
	Month       string                `json:"month"` // "2026-03"
	EnabledDays []int                 `json:"enabledDays"`
	Date        *string               `json:"date,omitempty"`
	Slots       []models.SlotResponse `json:"slots"`
	Notice      string                `json:"notice,omitempty"`
	Degraded    bool                  `json:"degraded"`
}

// ToUseCaseRequest разбирает месяц вида YYYY-MM; пустой месяц означает текущий
func ToUseCaseRequest(trainerID int64, month string, now time.Time) (getAvailableSlots.Request, error) {
	req := getAvailableSlots.Request{TrainerID: trainerID, Year: now.Year(), Month: now.Month()}
	if month == "" {
		return req, nil
	}

	parsed, err := time.Parse(domain.MonthFormat, month)
	if err != nil {
		return req, err
	}
	req.Year, req.Month = parsed.Year(), parsed.Month()
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case; при заданном дне отдаются только его слоты
func FromUseCaseResponse(trainerID int64, resp *getAvailableSlots.Response, day *time.Time, now time.Time) *AvailabilityResponse {
	loc := now.Location()
	out := &AvailabilityResponse{
		TrainerID:   trainerID,
		Month:       time.Date(resp.Year, resp.Month, 1, 0, 0, 0, 0, loc).Format(domain.MonthFormat),
		EnabledDays: getAvailableSlots.EnabledDays(resp.Year, resp.Month, resp.Slots, now).Sorted(),
		Slots:       make([]models.SlotResponse, 0),
		Degraded:    resp.Degraded,
	}

	if day == nil {
		for _, slot := range resp.Slots {
			if slot.IsBookable(now) {
				out.Slots = append(out.Slots, models.FromDomainSlot(slot, loc))
			}
		}
		return out
	}

	date := day.Format(domain.DateFormat)
	out.Date = &date
	for _, slot := range getAvailableSlots.SlotsForDay(*day, resp.Slots, now) {
		out.Slots = append(out.Slots, models.FromDomainSlot(slot, loc))
	}
	if len(out.Slots) == 0 {
		out.Notice = domain.NoSlotsForDayMessage
	}
	return out
}
