package domain

import "time"

// Slot is a trainer availability window open for one booking
type Slot struct {
	ID        int64
	TrainerID int64
	StartsAt  time.Time
	EndsAt    time.Time
	IsActive  bool // offered at all
	IsBlocked bool // temporarily withdrawn
}

// IsBookable returns true if the slot can be booked as of now
func (s *Slot) IsBookable(now time.Time) bool {
	return s.IsActive && !s.IsBlocked && s.StartsAt.After(now)
}

// StartsOn returns true if the slot starts on the calendar day of day, in day's location
func (s *Slot) StartsOn(day time.Time) bool {
	return SameDay(s.StartsAt.In(day.Location()), day)
}

// DurationMinutes returns the slot length in minutes
func (s *Slot) DurationMinutes() int {
	return int(s.EndsAt.Sub(s.StartsAt) / time.Minute)
}

// SameDay returns true if both times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
