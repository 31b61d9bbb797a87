package domain

// Trainer is fetched from the backend and never mutated by the portal
type Trainer struct {
	ID                     int64
	Name                   string
	Specialty              string
	Location               string
	SessionDurationMinutes int
}
