package wizard

import (
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Step шаг мастера записи
type Step string

const (
	StepSelecting  Step = "selecting"
	StepConfirming Step = "confirming"
	StepSuccess    Step = "success"
)

// State is the ephemeral wizard state. It is a value: transitions return a new State.
type State struct {
	Step Step
	Mode domain.BookingMode

	ReschedulingBookingID *int64

	SelectedDate           *time.Time // midnight of the chosen day in the viewer zone
	SelectedSlot           *domain.Slot
	SelectedSubscriptionID *int64

	// Error annotates the confirming step after a failed submit
	Error string

	// Blocked is set in mode new when no subscription has credits left
	Blocked bool

	// NoAvailability is the terminal reschedule view: nothing to move the booking to
	NoAvailability bool

	Submitting bool
	Result     *domain.Booking
}

// Initial возвращает начальное состояние мастера
func Initial(mode domain.BookingMode, reschedulingBookingID *int64) State {
	s := State{
		Step: StepSelecting,
		Mode: mode,
	}
	if mode == domain.ModeReschedule && reschedulingBookingID != nil {
		id := *reschedulingBookingID
		s.ReschedulingBookingID = &id
	}
	return s
}

// CanSelect возвращает true, если можно выбирать день и слот
func (s State) CanSelect() bool {
	return s.Step == StepSelecting && !s.Blocked && !s.NoAvailability
}

// CanConfirm возвращает true, если кнопка подтверждения активна
func (s State) CanConfirm() bool {
	return s.Step == StepConfirming && !s.Submitting
}
