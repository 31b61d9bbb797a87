package credits

import (
	"fmt"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// EligibleSubscription возвращает первый абонемент в порядке списка, по которому можно записаться
func EligibleSubscription(subs []domain.Subscription) (*domain.Subscription, bool) {
	for i := range subs {
		if subs[i].IsBookingEligible() {
			sub := subs[i]
			return &sub, true
		}
	}
	return nil, false
}

// Resolve выбирает абонемент для подтверждения записи.
// Перенос не расходует занятие, поэтому в режиме reschedule возвращается (nil, nil).
func Resolve(mode domain.BookingMode, subs []domain.Subscription) (*domain.Subscription, error) {
	switch mode {
	case domain.ModeReschedule:
		return nil, nil
	case domain.ModeNew:
		sub, ok := EligibleSubscription(subs)
		if !ok {
			return nil, ErrNoCreditsAvailable
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// Summary сводка по абонементам для страницы абонементов
type Summary struct {
	Total            int
	Eligible         int
	RemainingCredits int // остаток по абонементам, доступным для записи
	ByStatus         map[domain.SubscriptionStatus]int
	UnknownStatus    int // показаны как active, см. Subscription.DisplayStatus
}

// Summarize считает сводку; статусы группируются так, как они отображаются
func Summarize(subs []domain.Subscription) Summary {
	summary := Summary{
		Total:    len(subs),
		ByStatus: make(map[domain.SubscriptionStatus]int),
	}

	for i := range subs {
		sub := &subs[i]
		summary.ByStatus[sub.DisplayStatus()]++
		if !sub.IsKnownStatus() {
			summary.UnknownStatus++
		}
		if sub.IsBookingEligible() {
			summary.Eligible++
			summary.RemainingCredits += sub.SessionsRemaining()
		}
	}

	return summary
}
