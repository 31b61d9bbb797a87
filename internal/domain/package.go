package domain

// Package is a purchasable bundle of training sessions
type Package struct {
	ID                     int64
	Title                  string
	Category               string
	SessionCount           int
	SessionDurationMinutes int
	Price                  string // decimal as serialized by the backend
	Currency               string
	ValidityDays           int
}
