package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
)

// UseCase use case прямой записи на слот.
// Повторяет проверки мастера: слот бронируемый, есть абонемент с остатком.
type UseCase struct {
	slotsClient   SlotsClient
	subscriptions SubscriptionLoader
	bookings      BookingCreator
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotsClient SlotsClient,
	subscriptions SubscriptionLoader,
	bookings BookingCreator,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		slotsClient:   slotsClient,
		subscriptions: subscriptions,
		bookings:      bookings,
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания записи.
// Ошибки бэкенда при создании возвращаются как есть (таксономия сервиса bookings).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: trainer=%d, slot=%d, date=%s",
		req.TrainerID, req.SlotID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в зоне пользователя
	now := uc.timeProvider.Now().In(uc.location)
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	if err := validateDate(day, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Загружаем слоты месяца и проверяем выбранный
	slots, err := uc.slotsClient.ListSlots(ctx, req.TrainerID, day.Year(), day.Month())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load slots for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
	}

	slot, err := findBookableSlot(slots, req.SlotID, day, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 4. Выбираем абонемент
	subs, degraded := uc.subscriptions.Load(ctx)
	if degraded {
		uc.logger.Warn("CreateBooking: subscriptions unavailable, no credits can be resolved")
	}

	sub, err := credits.Resolve(domain.ModeNew, subs)
	if err != nil {
		uc.logger.Warn("CreateBooking: no subscription with remaining sessions (total=%d)", len(subs))
		return nil, err
	}

	// 5. Создаем запись
	booking, err := uc.bookings.Create(ctx, slot.ID, &sub.ID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, slot=%d, subscription=%d", booking.ID, slot.ID, sub.ID)
	return &Response{Booking: booking, Subscription: sub}, nil
}
