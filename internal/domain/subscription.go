package domain

import "time"

// SubscriptionStatus represents the lifecycle status of a subscription
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPaused   SubscriptionStatus = "paused"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is a customer's purchased package with its session credits.
// The backend decrements SessionsUsed when a booking is created; the portal only re-reads it.
type Subscription struct {
	ID            int64
	CustomerID    int64
	Package       Package
	SessionsTotal int
	SessionsUsed  int
	Status        SubscriptionStatus
	StartsAt      time.Time
	ExpiresAt     *time.Time
}

// SessionsRemaining returns total minus used, never negative
func (s *Subscription) SessionsRemaining() int {
	remaining := s.SessionsTotal - s.SessionsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsBookingEligible returns true for an active subscription with at least one credit left
func (s *Subscription) IsBookingEligible() bool {
	return s.Status == SubscriptionActive && s.SessionsRemaining() > 0
}

// IsKnownStatus returns true if the status is one the portal understands
func (s *Subscription) IsKnownStatus() bool {
	switch s.Status {
	case SubscriptionActive, SubscriptionPaused, SubscriptionExpired, SubscriptionCanceled:
		return true
	default:
		return false
	}
}

// DisplayStatus returns the status badge to show.
// Unknown statuses are shown as active. This mirrors the existing portal behaviour and is
// suspect: it must not be used for eligibility decisions, IsBookingEligible reads Status directly.
func (s *Subscription) DisplayStatus() SubscriptionStatus {
	if !s.IsKnownStatus() {
		return SubscriptionActive
	}
	return s.Status
}
