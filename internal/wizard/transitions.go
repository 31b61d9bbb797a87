package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
	"github.com/m04kA/SMC-TrainingPortal/pkg/ptr"
)

// Названия переходов для метрик
const (
	TransitionOpen             = "open"
	TransitionNavigateMonth    = "navigate_month"
	TransitionSelectDate       = "select_date"
	TransitionSelectSlot       = "select_slot"
	TransitionBlocked          = "blocked"
	TransitionBack             = "back"
	TransitionConfirmSucceeded = "confirm_succeeded"
	TransitionConfirmFailed    = "confirm_failed"
	TransitionBookAnother      = "book_another"
	TransitionNoAvailability   = "no_availability"
	TransitionClose            = "close"
)

// SelectDate выбирает день. Выбор слота сбрасывается, день может оказаться пустым.
func SelectDate(s State, date time.Time) (State, error) {
	if !s.CanSelect() {
		return s, fmt.Errorf("%w: select date in step %s", ErrInvalidTransition, s.Step)
	}

	day := domain.StartOfDay(date)
	s.SelectedDate = &day
	s.SelectedSlot = nil
	s.SelectedSubscriptionID = nil
	s.Error = ""
	return s, nil
}

// SelectSlot переводит мастер в confirming с выбранным слотом.
// В режиме new абонемент выбирается по остаткам; если подходящего нет, мастер блокируется и остается в selecting.
// Сетевых вызовов на этом шаге нет.
func SelectSlot(s State, slot domain.Slot, subs []domain.Subscription) (State, error) {
	if !s.CanSelect() {
		return s, fmt.Errorf("%w: select slot in step %s", ErrInvalidTransition, s.Step)
	}
	if s.SelectedDate == nil || !slot.StartsOn(*s.SelectedDate) {
		return s, fmt.Errorf("%w: slot %d is not on the selected date", ErrSlotUnavailable, slot.ID)
	}

	sub, err := credits.Resolve(s.Mode, subs)
	if errors.Is(err, credits.ErrNoCreditsAvailable) {
		s.Blocked = true
		s.SelectedSlot = nil
		s.SelectedSubscriptionID = nil
		return s, nil
	}
	if err != nil {
		return s, err
	}

	s.Step = StepConfirming
	s.SelectedSlot = &slot
	s.SelectedSubscriptionID = nil
	if sub != nil {
		s.SelectedSubscriptionID = ptr.Ptr(sub.ID)
	}
	s.Error = ""
	return s, nil
}

// Back возвращает из confirming в selecting. Сбрасывается только слот, день сохраняется.
func Back(s State) (State, error) {
	if s.Step != StepConfirming || s.Submitting {
		return s, fmt.Errorf("%w: back in step %s", ErrInvalidTransition, s.Step)
	}

	s.Step = StepSelecting
	s.SelectedSlot = nil
	s.SelectedSubscriptionID = nil
	s.Error = ""
	return s, nil
}

// BeginSubmit отмечает начало подтверждения
func BeginSubmit(s State) (State, error) {
	if s.Step != StepConfirming {
		return s, fmt.Errorf("%w: confirm in step %s", ErrInvalidTransition, s.Step)
	}
	if s.Submitting {
		return s, ErrSubmitInProgress
	}

	s.Submitting = true
	s.Error = ""
	return s, nil
}

// ConfirmSucceeded переводит мастер в success с созданной или перенесенной записью
func ConfirmSucceeded(s State, booking *domain.Booking) State {
	s.Step = StepSuccess
	s.Submitting = false
	s.Error = ""
	s.Result = booking
	return s
}

// ConfirmFailed оставляет мастер в confirming с сообщением; выбор сохраняется для повтора
func ConfirmFailed(s State, message string) State {
	s.Step = StepConfirming
	s.Submitting = false
	s.Error = message
	return s
}

// BookAnother полностью сбрасывает мастер после успеха. Единственный переход, очищающий день.
func BookAnother(s State) (State, error) {
	if s.Step != StepSuccess {
		return s, fmt.Errorf("%w: book another in step %s", ErrInvalidTransition, s.Step)
	}
	return Initial(domain.ModeNew, nil), nil
}

// ApplySubscriptions пересчитывает блокировку по свежему списку абонементов.
// Блокировка возможна только в selecting и только в режиме new.
func ApplySubscriptions(s State, subs []domain.Subscription) State {
	if s.Mode != domain.ModeNew {
		s.Blocked = false
		return s
	}
	if s.Step != StepSelecting {
		return s
	}

	_, ok := credits.EligibleSubscription(subs)
	s.Blocked = !ok
	return s
}

// ApplyRescheduleWindow включает терминальный вид "нет свободных слотов" для переноса
func ApplyRescheduleWindow(s State, hasAvailability bool) State {
	if s.Mode != domain.ModeReschedule || s.Step != StepSelecting {
		return s
	}
	s.NoAvailability = !hasAvailability
	return s
}
