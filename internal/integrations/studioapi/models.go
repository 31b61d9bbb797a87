package studioapi

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Trainer модель тренера из API студии
type Trainer struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	Specialty              string `json:"specialty"`
	Location               string `json:"location"`
	SessionDurationMinutes int    `json:"session_duration_minutes"`
}

// Package модель пакета занятий
type Package struct {
	ID                     int64       `json:"id"`
	Title                  string      `json:"title"`
	Category               string      `json:"category"`
	SessionCount           int         `json:"session_count"`
	SessionDurationMinutes int         `json:"session_duration_minutes"`
	Price                  json.Number `json:"price"` // бэкенд отдает decimal строкой
	Currency               string      `json:"currency"`
	ValidityDays           int         `json:"validity_days"`
}

// Slot модель слота доступности
type Slot struct {
	ID        int64     `json:"id"`
	Trainer   int64     `json:"trainer"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	IsActive  bool      `json:"is_active"`
	IsBlocked bool      `json:"is_blocked"`
}

// Subscription модель абонемента
type Subscription struct {
	ID            int64      `json:"id"`
	Customer      int64      `json:"customer"`
	Package       Package    `json:"package"`
	SessionsTotal int        `json:"sessions_total"`
	SessionsUsed  int        `json:"sessions_used"`
	Status        string     `json:"status"`
	StartsAt      time.Time  `json:"starts_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// BookingTrainer снимок тренера внутри записи
type BookingTrainer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// BookingPackage снимок пакета внутри записи
type BookingPackage struct {
	ID                     int64  `json:"id"`
	Title                  string `json:"title"`
	SessionDurationMinutes int    `json:"session_duration_minutes"`
}

// Booking модель записи на тренировку. trainer и package могут прийти null.
type Booking struct {
	ID             int64           `json:"id"`
	Customer       int64           `json:"customer"`
	Package        *BookingPackage `json:"package"`
	Slot           Slot            `json:"slot"`
	Trainer        *BookingTrainer `json:"trainer"`
	Subscription   *int64          `json:"subscription"`
	Status         string          `json:"status"`
	CanceledReason *string         `json:"canceled_reason"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateBookingRequest тело POST /bookings
type CreateBookingRequest struct {
	SlotID         int64  `json:"slot_id"`
	SubscriptionID *int64 `json:"subscription_id,omitempty"`
}

// CancelBookingRequest тело POST /bookings/{id}/cancel
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RescheduleBookingRequest тело POST /bookings/{id}/reschedule
type RescheduleBookingRequest struct {
	SlotID int64 `json:"slot_id"`
}

func (t Trainer) toDomain() domain.Trainer {
	return domain.Trainer{
		ID:                     t.ID,
		Name:                   t.Name,
		Specialty:              t.Specialty,
		Location:               t.Location,
		SessionDurationMinutes: t.SessionDurationMinutes,
	}
}

func (p Package) toDomain() domain.Package {
	return domain.Package{
		ID:                     p.ID,
		Title:                  p.Title,
		Category:               p.Category,
		SessionCount:           p.SessionCount,
		SessionDurationMinutes: p.SessionDurationMinutes,
		Price:                  p.Price.String(),
		Currency:               p.Currency,
		ValidityDays:           p.ValidityDays,
	}
}

func (s Slot) toDomain() domain.Slot {
	return domain.Slot{
		ID:        s.ID,
		TrainerID: s.Trainer,
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		IsActive:  s.IsActive,
		IsBlocked: s.IsBlocked,
	}
}

func (s Subscription) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:            s.ID,
		CustomerID:    s.Customer,
		Package:       s.Package.toDomain(),
		SessionsTotal: s.SessionsTotal,
		SessionsUsed:  s.SessionsUsed,
		Status:        domain.SubscriptionStatus(s.Status),
		StartsAt:      s.StartsAt,
		ExpiresAt:     s.ExpiresAt,
	}
}

func (b Booking) toDomain() *domain.Booking {
	booking := &domain.Booking{
		ID:             b.ID,
		CustomerID:     b.Customer,
		Slot:           b.Slot.toDomain(),
		SubscriptionID: b.Subscription,
		Status:         domain.BookingStatus(b.Status),
		CanceledReason: b.CanceledReason,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if b.Package != nil {
		booking.Package = &domain.PackageSnapshot{
			ID:                     b.Package.ID,
			Title:                  b.Package.Title,
			SessionDurationMinutes: b.Package.SessionDurationMinutes,
		}
	}
	if b.Trainer != nil {
		booking.Trainer = &domain.TrainerSnapshot{
			ID:        b.Trainer.ID,
			Name:      b.Trainer.Name,
			Specialty: b.Trainer.Specialty,
		}
	}
	return booking
}

func mapSlice[S any, D any](src []S, conv func(S) D) []D {
	out := make([]D, 0, len(src))
	for _, s := range src {
		out = append(out, conv(s))
	}
	return out
}
