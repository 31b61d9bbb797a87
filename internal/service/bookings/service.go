package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/integrations/studioapi"
)

// DefaultHistoryLimit сколько записей журнала отдается по умолчанию
const DefaultHistoryLimit = 50

// Service сервис жизненного цикла записей: создание, отмена, перенос.
// Повторов и локальных изменений нет, результат отражает только ответ бэкенда.
type Service struct {
	client       StudioClient
	journal      Journal
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей. journal и metrics могут быть nil.
func NewService(client StudioClient, journal Journal, metrics Metrics, logger Logger) *Service {
	if journal == nil {
		journal = NopJournal{}
	}
	return &Service{
		client:       client,
		journal:      journal,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает запись на слот. subscriptionID может быть nil.
func (s *Service) Create(ctx context.Context, slotID int64, subscriptionID *int64) (*domain.Booking, error) {
	s.logger.Info("CreateBooking: slot=%d, subscription=%s", slotID, formatID(subscriptionID))

	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	booking, err := s.client.CreateBooking(ctx, slotID, subscriptionID)
	if err != nil {
		err = s.translate("CreateBooking", err)
		s.finish(ctx, domain.ActionCreate, nil, &slotID, err)
		return nil, err
	}

	s.logger.Info("CreateBooking: created booking id=%d on slot=%d", booking.ID, slotID)
	s.finish(ctx, domain.ActionCreate, &booking.ID, &slotID, nil)
	return booking, nil
}

// Cancel отменяет запись. Окно изменения проверяется до обращения к бэкенду.
func (s *Service) Cancel(ctx context.Context, booking *domain.Booking, reason *string) (*domain.Booking, error) {
	if booking == nil {
		return nil, fmt.Errorf("%w: booking is required", ErrInvalidInput)
	}
	s.logger.Info("CancelBooking: booking id=%d", booking.ID)

	if err := s.checkModifiable("CancelBooking", booking); err != nil {
		s.finish(ctx, domain.ActionCancel, &booking.ID, &booking.Slot.ID, err)
		return nil, err
	}

	canceled, err := s.client.CancelBooking(ctx, booking.ID, reason)
	if err != nil {
		err = s.translate("CancelBooking", err)
		s.finish(ctx, domain.ActionCancel, &booking.ID, &booking.Slot.ID, err)
		return nil, err
	}

	s.logger.Info("CancelBooking: canceled booking id=%d", booking.ID)
	s.finish(ctx, domain.ActionCancel, &booking.ID, &booking.Slot.ID, nil)
	return canceled, nil
}

// Reschedule переносит запись на другой слот. Идентификатор записи сохраняется.
func (s *Service) Reschedule(ctx context.Context, booking *domain.Booking, newSlotID int64) (*domain.Booking, error) {
	if booking == nil {
		return nil, fmt.Errorf("%w: booking is required", ErrInvalidInput)
	}
	if newSlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	s.logger.Info("RescheduleBooking: booking id=%d to slot=%d", booking.ID, newSlotID)

	if err := s.checkModifiable("RescheduleBooking", booking); err != nil {
		s.finish(ctx, domain.ActionReschedule, &booking.ID, &newSlotID, err)
		return nil, err
	}

	moved, err := s.client.RescheduleBooking(ctx, booking.ID, newSlotID)
	if err != nil {
		err = s.translate("RescheduleBooking", err)
		s.finish(ctx, domain.ActionReschedule, &booking.ID, &newSlotID, err)
		return nil, err
	}

	s.logger.Info("RescheduleBooking: moved booking id=%d to slot=%d", booking.ID, newSlotID)
	s.finish(ctx, domain.ActionReschedule, &booking.ID, &newSlotID, nil)
	return moved, nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.client.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, studioapi.ErrBookingNotFound) {
			s.logger.Warn("GetBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		return nil, s.translate("GetBooking", err)
	}
	return booking, nil
}

// List получает записи пользователя, опционально с фильтром по статусу
func (s *Service) List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error) {
	all, err := s.client.ListBookings(ctx)
	if err != nil {
		return nil, s.translate("ListBookings", err)
	}

	if status == nil {
		return all, nil
	}

	filtered := make([]*domain.Booking, 0, len(all))
	for _, b := range all {
		if b.Status == *status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// History возвращает журнал попыток изменения записи
func (s *Service) History(ctx context.Context, bookingID int64, limit uint64) ([]domain.JournalEntry, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	entries, err := s.journal.ListByBooking(ctx, bookingID, limit)
	if err != nil {
		s.logger.Error("BookingHistory: journal error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: BookingHistory - journal error: %v", ErrInternal, err)
	}
	return entries, nil
}

// Now возвращает время, на которое проверяется окно изменения
func (s *Service) Now() time.Time {
	return s.timeProvider.Now()
}

// checkModifiable проверяет статус записи и окно изменения
func (s *Service) checkModifiable(op string, booking *domain.Booking) error {
	if booking.IsCanceled() {
		s.logger.Warn("%s: booking id=%d is already canceled", op, booking.ID)
		return ErrBookingCanceled
	}

	if !domain.CanModify(booking.Slot.StartsAt, s.timeProvider.Now()) {
		s.logger.Warn("%s: booking id=%d starts at %s, modification window closed",
			op, booking.ID, booking.Slot.StartsAt.Format(time.RFC3339))
		return ErrModificationWindowClosed
	}

	return nil
}

// translate приводит ошибку клиента к ошибкам сервиса
func (s *Service) translate(op string, err error) error {
	var apiErr *studioapi.ValidationError
	if errors.As(err, &apiErr) {
		s.logger.Warn("%s: rejected by backend: %s", op, apiErr.Message)
		return &ValidationError{Message: apiErr.Message}
	}

	s.logger.Error("%s: backend call failed: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// finish записывает исход попытки в журнал и метрики. Ошибка журнала не влияет на результат.
func (s *Service) finish(ctx context.Context, action domain.JournalAction, bookingID, slotID *int64, err error) {
	outcome := outcomeOf(err)
	if s.metrics != nil {
		s.metrics.RecordBookingAction(string(action), string(outcome))
	}

	entry := domain.JournalEntry{
		Action:    action,
		BookingID: bookingID,
		SlotID:    slotID,
		Outcome:   outcome,
		Message:   UserMessage(err),
		CreatedAt: s.timeProvider.Now(),
	}
	if jerr := s.journal.Record(ctx, entry); jerr != nil {
		s.logger.Warn("Journal: failed to record %s attempt: %v", action, jerr)
	}
}

func outcomeOf(err error) domain.JournalOutcome {
	switch {
	case err == nil:
		return domain.OutcomeSucceeded
	case errors.Is(err, ErrValidationFailed):
		return domain.OutcomeRejected
	case errors.Is(err, ErrModificationWindowClosed), errors.Is(err, ErrBookingCanceled):
		return domain.OutcomeDenied
	default:
		return domain.OutcomeFailed
	}
}

func formatID(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
