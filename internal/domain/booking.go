package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCanceled  BookingStatus = "canceled"
)

// TrainerSnapshot is the trainer data embedded in a booking response
type TrainerSnapshot struct {
	ID        int64
	Name      string
	Specialty string
}

// PackageSnapshot is the package data embedded in a booking response
type PackageSnapshot struct {
	ID                     int64
	Title                  string
	SessionDurationMinutes int
}

// Booking represents one training session booked against a slot.
// Package and Trainer may be missing in backend responses.
type Booking struct {
	ID             int64
	CustomerID     int64
	Package        *PackageSnapshot
	Slot           Slot
	Trainer        *TrainerSnapshot
	SubscriptionID *int64
	Status         BookingStatus
	CanceledReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCanceled returns true if the booking has been canceled
func (b *Booking) IsCanceled() bool {
	return b.Status == StatusCanceled
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// TrainerName returns the trainer name or a neutral fallback
func (b *Booking) TrainerName() string {
	if b.Trainer == nil || b.Trainer.Name == "" {
		return FallbackTrainerName
	}
	return b.Trainer.Name
}

// PackageTitle returns the package title or a neutral fallback
func (b *Booking) PackageTitle() string {
	if b.Package == nil || b.Package.Title == "" {
		return FallbackPackageTitle
	}
	return b.Package.Title
}

// BookingMode distinguishes a fresh booking from moving an existing one
type BookingMode string

const (
	ModeNew        BookingMode = "new"
	ModeReschedule BookingMode = "reschedule"
)

// IsValid проверяет, что режим известен
func (m BookingMode) IsValid() bool {
	return m == ModeNew || m == ModeReschedule
}
