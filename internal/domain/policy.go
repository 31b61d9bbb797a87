package domain

import "time"

// ModificationWindow is how long before the session start cancel and reschedule stop being allowed
const ModificationWindow = 24 * time.Hour

// CanModify reports whether a booking whose slot starts at slotStart may still be
// canceled or rescheduled. Exactly 24h before the start is already too late.
func CanModify(slotStart, now time.Time) bool {
	return slotStart.Sub(now) > ModificationWindow
}

// BookingActions describes which actions the booking detail view may offer
type BookingActions struct {
	CanCancel     bool
	CanReschedule bool
	Reason        string // why the actions are disabled, empty when they are enabled
}

// ActionsFor evaluates the modification policy for a booking
func ActionsFor(b *Booking, now time.Time) BookingActions {
	if b.IsCanceled() {
		return BookingActions{Reason: BookingCanceledMessage}
	}
	if !CanModify(b.Slot.StartsAt, now) {
		return BookingActions{Reason: ModificationWindowClosedMessage}
	}
	return BookingActions{CanCancel: true, CanReschedule: true}
}
