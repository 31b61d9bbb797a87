package wizard

import (
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// View снимок мастера для отображения
type View struct {
	State State

	TrainerID int64
	Year      int
	Month     time.Month

	// EnabledDays пересчитываются на момент снимка
	EnabledDays []int
	// DaySlots бронируемые слоты выбранного дня, по времени начала
	DaySlots []domain.Slot

	LoadingSlots          bool
	LoadingSubscriptions  bool
	SlotsDegraded         bool
	SubscriptionsDegraded bool

	// Subscription абонемент, который будет списан (режим new)
	Subscription *domain.Subscription
	// Booking переносимая запись (режим reschedule)
	Booking *domain.Booking

	// Notice поясняющее сообщение для пустых и блокирующих состояний
	Notice string
}
