package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// GetUserBookingsRequest запрос на получение записей пользователя
type GetUserBookingsRequest struct {
	Status *string `json:"status,omitempty"`
}

// Response модели

// ActionsResponse доступные действия над записью
type ActionsResponse struct {
	CanCancel     bool   `json:"canCancel"`
	CanReschedule bool   `json:"canReschedule"`
	Reason        string `json:"reason,omitempty"`
}

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64     `json:"id"`
	Status          string    `json:"status"`
	SlotID          int64     `json:"slotId"`
	Date            string    `json:"date"`      // "2026-03-10"
	StartTime       string    `json:"startTime"` // "10:00"
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`

	// Денормализованные данные, с подстановкой при отсутствии
	TrainerID      *int64  `json:"trainerId,omitempty"`
	TrainerName    string  `json:"trainerName"`
	PackageTitle   string  `json:"packageTitle"`
	SubscriptionID *int64  `json:"subscriptionId,omitempty"`
	CanceledReason *string `json:"canceledReason,omitempty"`

	Actions *ActionsResponse `json:"actions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// JournalEntryResponse запись журнала операций
type JournalEntryResponse struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	SlotID    *int64    `json:"slotId,omitempty"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryResponse история операций над записью
type HistoryResponse struct {
	BookingID int64                  `json:"bookingId"`
	Entries   []JournalEntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO; дата и время в зоне loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := b.Slot.StartsAt.In(loc)
	resp := &BookingResponse{
		ID:              b.ID,
		Status:          string(b.Status),
		SlotID:          b.Slot.ID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format("15:04"),
		StartsAt:        start,
		EndsAt:          b.Slot.EndsAt.In(loc),
		DurationMinutes: b.Slot.DurationMinutes(),
		TrainerName:     b.TrainerName(),
		PackageTitle:    b.PackageTitle(),
		SubscriptionID:  b.SubscriptionID,
		CanceledReason:  b.CanceledReason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Trainer != nil {
		resp.TrainerID = ptr.Ptr(b.Trainer.ID)
	}

	return resp
}

// FromDomainBookingWithActions добавляет к DTO действия, доступные на момент now
func FromDomainBookingWithActions(b *domain.Booking, now time.Time) *BookingResponse {
	resp := FromDomainBooking(b, now.Location())
	if resp == nil {
		return nil
	}

	actions := domain.ActionsFor(b, now)
	resp.Actions = &ActionsResponse{
		CanCancel:     actions.CanCancel,
		CanReschedule: actions.CanReschedule,
		Reason:        actions.Reason,
	}
	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainJournal конвертирует журнал операций в DTO
func FromDomainJournal(bookingID int64, entries []domain.JournalEntry) *HistoryResponse {
	resp := &HistoryResponse{
		BookingID: bookingID,
		Entries:   make([]JournalEntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, JournalEntryResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			SlotID:    e.SlotID,
			Outcome:   string(e.Outcome),
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCanceled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
