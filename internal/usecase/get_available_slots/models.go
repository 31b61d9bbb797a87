package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Request модель запроса слотов тренера за месяц
type Request struct {
	TrainerID int64
	Year      int
	Month     time.Month
}

// Response модель ответа: слоты месяца и дни, доступные для выбора
type Response struct {
	Year        int
	Month       time.Month
	Slots       []domain.Slot // все загруженные слоты месяца, по времени начала
	EnabledDays DaySet
	Degraded    bool // загрузка не удалась, данные пустые
}

// DaySet множество дней месяца (1..31)
type DaySet map[int]struct{}

// Contains проверяет, что день включен
func (d DaySet) Contains(day int) bool {
	_, ok := d[day]
	return ok
}

// Sorted возвращает дни по возрастанию
func (d DaySet) Sorted() []int {
	days := make([]int, 0, len(d))
	for day := range d {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Empty возвращает true, если ни один день не доступен
func (d DaySet) Empty() bool {
	return len(d) == 0
}
