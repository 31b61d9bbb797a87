package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func slot(id int64, start time.Time) domain.Slot {
	return domain.Slot{ID: id, TrainerID: 1, StartsAt: start, EndsAt: start.Add(time.Hour), IsActive: true}
}

func TestEnabledDays_OnlyBookableFutureDays(t *testing.T) {
	now := at(10, 12)

	blocked := slot(3, at(14, 9))
	blocked.IsBlocked = true
	inactive := slot(4, at(15, 9))
	inactive.IsActive = false

	slots := []domain.Slot{
		slot(1, at(10, 9)),  // сегодня, уже прошел
		slot(2, at(10, 15)), // сегодня, еще впереди
		blocked,
		inactive,
		slot(5, at(20, 9)),
		slot(6, at(20, 11)),
		slot(7, at(5, 9)), // прошлый день
		slot(8, time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)),
	}

	days := EnabledDays(2026, time.March, slots, now)

	assert.Equal(t, []int{10, 20}, days.Sorted())
	assert.False(t, days.Contains(14))
	assert.False(t, days.Contains(15))
	assert.False(t, days.Contains(5))
}

func TestEnabledDays_SubsetOfBookableSlotDays(t *testing.T) {
	now := at(1, 0)
	var slots []domain.Slot
	for d := 1; d <= 31; d++ {
		s := slot(int64(d), at(d, 10))
		s.IsBlocked = d%3 == 0
		s.IsActive = d%5 != 0
		slots = append(slots, s)
	}

	days := EnabledDays(2026, time.March, slots, now)

	for _, d := range days.Sorted() {
		found := false
		for _, s := range slots {
			if s.StartsAt.Day() == d && s.IsBookable(now) {
				found = true
			}
		}
		assert.True(t, found, "day %d enabled without a bookable slot", d)
	}
	for _, s := range slots {
		if s.IsBookable(now) {
			assert.True(t, days.Contains(s.StartsAt.Day()))
		}
	}
}

func TestEnabledDays_ViewerZone(t *testing.T) {
	tz := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, tz)

	// 02:00 UTC on the 11th is the evening of the 10th in UTC-5
	days := EnabledDays(2026, time.March, []domain.Slot{slot(1, at(11, 2))}, now)

	assert.Equal(t, []int{10}, days.Sorted())
}

func TestEnabledDays_Empty(t *testing.T) {
	days := EnabledDays(2026, time.March, nil, at(1, 0))
	assert.True(t, days.Empty())
}

func TestSlotsForDay_SortedAndFiltered(t *testing.T) {
	now := at(10, 12)
	blocked := slot(4, at(12, 8))
	blocked.IsBlocked = true

	slots := []domain.Slot{
		slot(3, at(12, 17)),
		slot(1, at(12, 9)),
		blocked,
		slot(2, at(12, 9)),
		slot(5, at(13, 9)),
	}

	got := SlotsForDay(at(12, 0), slots, now)

	ids := make([]int64, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestSlotsForDay_NoSlotsIsEmptyNotNil(t *testing.T) {
	got := SlotsForDay(at(18, 0), []domain.Slot{slot(1, at(12, 9))}, at(10, 12))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSlotsForDay_PastDayIsEmpty(t *testing.T) {
	got := SlotsForDay(at(9, 0), []domain.Slot{slot(1, at(9, 23))}, at(10, 0))
	assert.Empty(t, got)
}
