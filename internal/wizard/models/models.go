package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	bookingModels "github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard"
)

// Request модели

// StartWizardRequest запуск мастера записи
type StartWizardRequest struct {
	Mode      string `json:"mode"`
	BookingID *int64 `json:"bookingId,omitempty"`
	TrainerID int64  `json:"trainerId,omitempty"`
	Year      int    `json:"year,omitempty"`
	Month     int    `json:"month,omitempty"`
}

// NavigateMonthRequest переключение месяца или тренера
type NavigateMonthRequest struct {
	TrainerID int64 `json:"trainerId"`
	Year      int   `json:"year"`
	Month     int   `json:"month"`
}

// SelectDateRequest выбор дня
type SelectDateRequest struct {
	Date string `json:"date"` // "2026-03-10"
}

// SelectSlotRequest выбор слота
type SelectSlotRequest struct {
	SlotID int64 `json:"slotId"`
}

// Response модели

// SlotResponse слот в календаре мастера
type SlotResponse struct {
	ID              int64     `json:"id"`
	StartTime       string    `json:"startTime"` // "10:00"
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// SubscriptionResponse абонемент пользователя
type SubscriptionResponse struct {
	ID                int64      `json:"id"`
	PackageID         int64      `json:"packageId"`
	PackageTitle      string     `json:"packageTitle"`
	SessionsTotal     int        `json:"sessionsTotal"`
	SessionsUsed      int        `json:"sessionsUsed"`
	SessionsRemaining int        `json:"sessionsRemaining"`
	Status            string     `json:"status"`
	Eligible          bool       `json:"eligible"`
	StartsAt          time.Time  `json:"startsAt"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
}

// StateResponse состояние мастера
type StateResponse struct {
	Step                   string                         `json:"step"`
	Mode                   string                         `json:"mode"`
	ReschedulingBookingID  *int64                         `json:"reschedulingBookingId,omitempty"`
	SelectedDate           *string                        `json:"selectedDate,omitempty"`
	SelectedSlot           *SlotResponse                  `json:"selectedSlot,omitempty"`
	SelectedSubscriptionID *int64                         `json:"selectedSubscriptionId,omitempty"`
	Error                  string                         `json:"error,omitempty"`
	Blocked                bool                           `json:"blocked"`
	NoAvailability         bool                           `json:"noAvailability"`
	Submitting             bool                           `json:"submitting"`
	Result                 *bookingModels.BookingResponse `json:"result,omitempty"`
}

// ViewResponse снимок мастера
type ViewResponse struct {
	WizardID              string                         `json:"wizardId"`
	State                 StateResponse                  `json:"state"`
	TrainerID             int64                          `json:"trainerId"`
	Month                 string                         `json:"month"` // "2026-03"
	EnabledDays           []int                          `json:"enabledDays"`
	DaySlots              []SlotResponse                 `json:"daySlots"`
	LoadingSlots          bool                           `json:"loadingSlots"`
	LoadingSubscriptions  bool                           `json:"loadingSubscriptions"`
	SlotsDegraded         bool                           `json:"slotsDegraded"`
	SubscriptionsDegraded bool                           `json:"subscriptionsDegraded"`
	Subscription          *SubscriptionResponse          `json:"subscription,omitempty"`
	Booking               *bookingModels.BookingResponse `json:"booking,omitempty"`
	Notice                string                         `json:"notice,omitempty"`
}

// Методы конвертации

// ToDomainMode конвертирует режим; пустая строка означает новую запись
func (r *StartWizardRequest) ToDomainMode() domain.BookingMode {
	if r.Mode == "" {
		return domain.ModeNew
	}
	return domain.BookingMode(r.Mode)
}

// ParseDate разбирает день в зоне loc
func (r *SelectDateRequest) ParseDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, r.Date, loc)
}

// FromDomainSlot конвертирует слот; время в зоне loc
func FromDomainSlot(s domain.Slot, loc *time.Location) SlotResponse {
	start := s.StartsAt.In(loc)
	return SlotResponse{
		ID:              s.ID,
		StartTime:       start.Format("15:04"),
		StartsAt:        start,
		EndsAt:          s.EndsAt.In(loc),
		DurationMinutes: s.DurationMinutes(),
	}
}

// FromDomainSubscription конвертирует абонемент; статус отображаемый
func FromDomainSubscription(s *domain.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
		ID:                s.ID,
		PackageID:         s.Package.ID,
		PackageTitle:      s.Package.Title,
		SessionsTotal:     s.SessionsTotal,
		SessionsUsed:      s.SessionsUsed,
		SessionsRemaining: s.SessionsRemaining(),
		Status:            string(s.DisplayStatus()),
		Eligible:          s.IsBookingEligible(),
		StartsAt:          s.StartsAt,
		ExpiresAt:         s.ExpiresAt,
	}
}

// FromView конвертирует снимок мастера в DTO
func FromView(wizardID string, v wizard.View, loc *time.Location) *ViewResponse {
	if loc == nil {
		loc = time.UTC
	}

	resp := &ViewResponse{
		WizardID:              wizardID,
		State:                 fromState(v.State, loc),
		TrainerID:             v.TrainerID,
		Month:                 time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, loc).Format(domain.MonthFormat),
		EnabledDays:           v.EnabledDays,
		DaySlots:              make([]SlotResponse, 0, len(v.DaySlots)),
		LoadingSlots:          v.LoadingSlots,
		LoadingSubscriptions:  v.LoadingSubscriptions,
		SlotsDegraded:         v.SlotsDegraded,
		SubscriptionsDegraded: v.SubscriptionsDegraded,
		Subscription:          FromDomainSubscription(v.Subscription),
		Booking:               bookingModels.FromDomainBooking(v.Booking, loc),
		Notice:                v.Notice,
	}
	if resp.EnabledDays == nil {
		resp.EnabledDays = []int{}
	}

	for _, slot := range v.DaySlots {
		resp.DaySlots = append(resp.DaySlots, FromDomainSlot(slot, loc))
	}

	return resp
}

func fromState(s wizard.State, loc *time.Location) StateResponse {
	resp := StateResponse{
		Step:                   string(s.Step),
		Mode:                   string(s.Mode),
		ReschedulingBookingID:  s.ReschedulingBookingID,
		SelectedSubscriptionID: s.SelectedSubscriptionID,
		Error:                  s.Error,
		Blocked:                s.Blocked,
		NoAvailability:         s.NoAvailability,
		Submitting:             s.Submitting,
		Result:                 bookingModels.FromDomainBooking(s.Result, loc),
	}

	if s.SelectedDate != nil {
		date := s.SelectedDate.In(loc).Format(domain.DateFormat)
		resp.SelectedDate = &date
	}
	if s.SelectedSlot != nil {
		slot := FromDomainSlot(*s.SelectedSlot, loc)
		resp.SelectedSlot = &slot
	}

	return resp
}
