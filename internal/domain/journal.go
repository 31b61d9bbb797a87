package domain

import "time"

// JournalAction is a booking lifecycle operation recorded in the journal
type JournalAction string

const (
	ActionCreate     JournalAction = "create"
	ActionCancel     JournalAction = "cancel"
	ActionReschedule JournalAction = "reschedule"
)

// JournalOutcome is the result of one lifecycle attempt
type JournalOutcome string

const (
	OutcomeSucceeded JournalOutcome = "succeeded"
	OutcomeRejected  JournalOutcome = "rejected" // backend validation error
	OutcomeDenied    JournalOutcome = "denied"   // refused by a client-side policy, no request sent
	OutcomeFailed    JournalOutcome = "failed"   // transport or unexpected backend failure
)

// JournalEntry records one create/cancel/reschedule attempt made through the portal
type JournalEntry struct {
	ID        int64
	Action    JournalAction
	BookingID *int64
	SlotID    *int64
	Outcome   JournalOutcome
	Message   string
	CreatedAt time.Time
}
