package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что день не в прошлом
func validateDate(date, now time.Time) error {
	if date.In(now.Location()).Before(domain.StartOfDay(now)) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// findBookableSlot ищет слот среди бронируемых слотов выбранного дня
func findBookableSlot(slots []domain.Slot, slotID int64, day, now time.Time) (domain.Slot, error) {
	for _, slot := range slots {
		if slot.ID != slotID {
			continue
		}
		if !slot.StartsOn(day) || !slot.IsBookable(now) {
			return domain.Slot{}, fmt.Errorf("%w: slot id=%d", ErrSlotNotAvailable, slotID)
		}
		return slot, nil
	}
	return domain.Slot{}, fmt.Errorf("%w: slot id=%d not found", ErrSlotNotAvailable, slotID)
}
