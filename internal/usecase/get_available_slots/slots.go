package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// EnabledDays возвращает дни месяца, в которые начинается хотя бы один бронируемый слот.
// Календарные дни считаются в зоне now. Дни раньше сегодняшнего всегда выключены.
func EnabledDays(year int, month time.Month, slots []domain.Slot, now time.Time) DaySet {
	days := make(DaySet)
	loc := now.Location()
	today := domain.StartOfDay(now)

	for i := range slots {
		slot := &slots[i]
		if !slot.IsBookable(now) {
			continue
		}

		start := slot.StartsAt.In(loc)
		if start.Year() != year || start.Month() != month {
			continue
		}
		if domain.StartOfDay(start).Before(today) {
			continue
		}
		days[start.Day()] = struct{}{}
	}

	return days
}

// SlotsForDay возвращает бронируемые слоты, начинающиеся в календарный день day (в зоне day),
// по возрастанию времени начала. Пустой результат это нормальный ответ.
func SlotsForDay(day time.Time, slots []domain.Slot, now time.Time) []domain.Slot {
	result := make([]domain.Slot, 0)
	if isDateInPast(day, now.In(day.Location())) {
		return result
	}

	for i := range slots {
		slot := slots[i]
		if slot.IsBookable(now) && slot.StartsOn(day) {
			result = append(result, slot)
		}
	}

	sortByStart(result)
	return result
}

// sortByStart сортирует слоты по времени начала, при равенстве по ID
func sortByStart(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].StartsAt.Equal(slots[j].StartsAt) {
			return slots[i].ID < slots[j].ID
		}
		return slots[i].StartsAt.Before(slots[j].StartsAt)
	})
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return domain.StartOfDay(date).Before(domain.StartOfDay(now))
}
