package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
	"github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingPortal/pkg/ptr"
)

// Controller owns one wizard: its State, the fetched read-models and the fetch guard.
// Calls are serialized by mu, which is released while a network call is in flight.
// Results of superseded fetches are dropped.
type Controller struct {
	mu sync.Mutex

	state   State
	booking *domain.Booking // переносимая запись в режиме reschedule

	trainerID int64
	year      int
	month     time.Month

	monthData     *get_available_slots.Response
	loadingSlots  bool
	slotsDegraded bool

	subs         []domain.Subscription
	subsLoaded   bool
	loadingSubs  bool
	subsDegraded bool

	guard  *Guard
	closed bool

	slots     SlotLoader
	subLoader SubscriptionLoader
	lifecycle Lifecycle
	metrics   Metrics
	logger    Logger
}

// NewController создает мастер. Перенос отмененной записи или записи внутри окна 24 часов не допускается.
func NewController(cfg Config, deps Deps) (*Controller, error) {
	if !cfg.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}

	now := deps.Slots.Now()
	trainerID := cfg.TrainerID
	var bookingID *int64

	if cfg.Mode == domain.ModeReschedule {
		if cfg.Booking == nil {
			return nil, fmt.Errorf("%w: reschedule requires a booking", ErrInvalidConfig)
		}
		if cfg.Booking.IsCanceled() {
			return nil, bookings.ErrBookingCanceled
		}
		if !domain.CanModify(cfg.Booking.Slot.StartsAt, now) {
			return nil, bookings.ErrModificationWindowClosed
		}
		if trainerID == 0 {
			trainerID = cfg.Booking.Slot.TrainerID
			if cfg.Booking.Trainer != nil && cfg.Booking.Trainer.ID > 0 {
				trainerID = cfg.Booking.Trainer.ID
			}
		}
		bookingID = ptr.Ptr(cfg.Booking.ID)
	}

	if trainerID <= 0 {
		return nil, fmt.Errorf("%w: trainer is required", ErrInvalidConfig)
	}

	year, month := cfg.Year, cfg.Month
	if year == 0 || month == 0 {
		year, month = now.Year(), now.Month()
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidConfig)
	}

	return &Controller{
		state:     Initial(cfg.Mode, bookingID),
		booking:   cfg.Booking,
		trainerID: trainerID,
		year:      year,
		month:     month,
		guard:     NewGuard(),
		slots:     deps.Slots,
		subLoader: deps.Subscriptions,
		lifecycle: deps.Lifecycle,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}, nil
}

// Open загружает стартовый месяц и абонементы.
// В режиме reschedule пустой стартовый месяц дает терминальный вид "нет свободных слотов".
func (c *Controller) Open(ctx context.Context) (View, error) {
	c.mu.Lock()
	trainerID, year, month := c.trainerID, c.year, c.month
	c.mu.Unlock()

	c.record(TransitionOpen)

	if err := c.loadMonth(ctx, trainerID, year, month, true); err != nil {
		return c.View(), err
	}
	if err := c.refreshSubscriptions(ctx); err != nil {
		return c.View(), err
	}
	return c.View(), nil
}

// NavigateMonth переключает месяц или тренера. Незавершенная загрузка прошлого месяца становится устаревшей.
func (c *Controller) NavigateMonth(ctx context.Context, trainerID int64, year int, month time.Month) (View, error) {
	if err := c.loadMonth(ctx, trainerID, year, month, false); err != nil {
		return c.View(), err
	}
	c.record(TransitionNavigateMonth)
	return c.View(), nil
}

// RefreshSubscriptions перечитывает абонементы и пересчитывает блокировку
func (c *Controller) RefreshSubscriptions(ctx context.Context) (View, error) {
	err := c.refreshSubscriptions(ctx)
	return c.View(), err
}

// SelectDate выбирает день в зоне пользователя. День должен принадлежать загруженному месяцу.
func (c *Controller) SelectDate(date time.Time) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.viewLocked(), ErrClosed
	}

	now := c.slots.Now()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(domain.StartOfDay(now)) {
		return c.viewLocked(), fmt.Errorf("%w: %s", ErrDateInPast, day.Format(domain.DateFormat))
	}
	if day.Year() != c.year || day.Month() != c.month {
		return c.viewLocked(), fmt.Errorf("%w: %s is outside %04d-%02d", ErrInvalidTransition,
			day.Format(domain.DateFormat), c.year, int(c.month))
	}

	next, err := SelectDate(c.state, day)
	if err != nil {
		return c.viewLocked(), err
	}
	c.state = next
	c.record(TransitionSelectDate)
	return c.viewLocked(), nil
}

// SelectSlot выбирает слот выбранного дня и переводит мастер в confirming.
// Запрос к бэкенду не отправляется до явного подтверждения.
func (c *Controller) SelectSlot(slotID int64) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.viewLocked(), ErrClosed
	}
	if !c.state.CanSelect() || c.state.SelectedDate == nil {
		return c.viewLocked(), fmt.Errorf("%w: select slot in step %s", ErrInvalidTransition, c.state.Step)
	}
	if c.loadingSlots || c.monthData == nil {
		return c.viewLocked(), fmt.Errorf("%w: slots", ErrNotReady)
	}
	if c.state.Mode == domain.ModeNew && (c.loadingSubs || !c.subsLoaded) {
		return c.viewLocked(), fmt.Errorf("%w: subscriptions", ErrNotReady)
	}

	daySlots := get_available_slots.SlotsForDay(*c.state.SelectedDate, c.monthData.Slots, c.slots.Now())
	slot, ok := findSlot(daySlots, slotID)
	if !ok {
		return c.viewLocked(), fmt.Errorf("%w: id=%d", ErrSlotUnavailable, slotID)
	}

	next, err := SelectSlot(c.state, slot, c.subs)
	if err != nil {
		return c.viewLocked(), err
	}
	c.state = next

	if c.state.Blocked {
		c.logger.Warn("Wizard: no subscription with remaining sessions, blocking")
		c.record(TransitionBlocked)
	} else {
		c.record(TransitionSelectSlot)
	}
	return c.viewLocked(), nil
}

// Back возвращает к выбору слота того же дня
func (c *Controller) Back() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.viewLocked(), ErrClosed
	}

	next, err := Back(c.state)
	if err != nil {
		return c.viewLocked(), err
	}
	c.state = next
	c.record(TransitionBack)
	return c.viewLocked(), nil
}

// Confirm создает или переносит запись. Повторный вызов до ответа бэкенда возвращает ErrSubmitInProgress.
// Ошибка бэкенда оставляет мастер в confirming с сообщением, выбор сохраняется.
func (c *Controller) Confirm(ctx context.Context) (View, error) {
	c.mu.Lock()
	if c.closed {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrClosed
	}
	next, err := BeginSubmit(c.state)
	if err != nil {
		defer c.mu.Unlock()
		return c.viewLocked(), err
	}
	c.state = next

	slot := *c.state.SelectedSlot
	subscriptionID := c.state.SelectedSubscriptionID
	mode := c.state.Mode
	booking := c.booking
	c.mu.Unlock()

	var result *domain.Booking
	if mode == domain.ModeReschedule {
		result, err = c.lifecycle.Reschedule(ctx, booking, slot.ID)
	} else {
		result, err = c.lifecycle.Create(ctx, slot.ID, subscriptionID)
	}

	c.mu.Lock()
	if c.closed {
		// принятую бэкендом операцию не откатываем, просто не обновляем закрытый мастер
		defer c.mu.Unlock()
		return c.viewLocked(), err
	}

	if err != nil {
		c.state = ConfirmFailed(c.state, bookings.UserMessage(err))
		c.record(TransitionConfirmFailed)
		defer c.mu.Unlock()
		return c.viewLocked(), err
	}

	c.state = ConfirmSucceeded(c.state, result)
	if mode == domain.ModeReschedule {
		c.booking = result
	}
	c.record(TransitionConfirmSucceeded)
	c.mu.Unlock()

	// бэкенд списал занятие, перечитываем остатки
	if rerr := c.refreshSubscriptions(ctx); rerr != nil {
		c.logger.Warn("Wizard: subscriptions refresh after confirm skipped: %v", rerr)
	}
	return c.View(), nil
}

// BookAnother сбрасывает мастер после успеха в начальное состояние новой записи
// и перечитывает текущий месяц: только что занятый слот больше не бронируемый.
func (c *Controller) BookAnother(ctx context.Context) (View, error) {
	c.mu.Lock()
	if c.closed {
		defer c.mu.Unlock()
		return c.viewLocked(), ErrClosed
	}

	next, err := BookAnother(c.state)
	if err != nil {
		defer c.mu.Unlock()
		return c.viewLocked(), err
	}
	c.state = next
	c.booking = nil
	if c.subsLoaded {
		c.state = ApplySubscriptions(c.state, c.subs)
	}
	trainerID, year, month := c.trainerID, c.year, c.month
	c.record(TransitionBookAnother)
	c.mu.Unlock()

	if err := c.loadMonth(ctx, trainerID, year, month, false); err != nil {
		return c.View(), err
	}
	return c.View(), nil
}

// Close закрывает мастер. Результаты незавершенных загрузок будут отброшены.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.guard.Close()
	c.record(TransitionClose)
}

// Closed возвращает true после Close
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// State возвращает копию текущего состояния
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View возвращает снимок мастера
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) loadMonth(ctx context.Context, trainerID int64, year int, month time.Month, opening bool) error {
	if trainerID <= 0 || month < time.January || month > time.December {
		return fmt.Errorf("%w: trainer=%d, month=%d", get_available_slots.ErrInvalidInput, trainerID, month)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !opening && (c.state.Step != StepSelecting || c.state.NoAvailability) {
		c.mu.Unlock()
		return fmt.Errorf("%w: navigate in step %s", ErrInvalidTransition, c.state.Step)
	}

	c.trainerID, c.year, c.month = trainerID, year, month
	ticket := c.guard.Begin(FetchSlots)
	c.monthData = nil
	c.loadingSlots = true
	c.mu.Unlock()

	resp, err := c.slots.Execute(ctx, get_available_slots.Request{TrainerID: trainerID, Year: year, Month: month})

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.guard.Valid(ticket) {
		c.logger.Warn("Wizard: dropping stale slots for trainer=%d, month=%04d-%02d", trainerID, year, int(month))
		return ErrStaleResult
	}
	c.loadingSlots = false
	if err != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	c.monthData = resp
	c.slotsDegraded = resp.Degraded

	if opening && c.state.Mode == domain.ModeReschedule {
		hasAvailability := !resp.EnabledDays.Empty()
		c.state = ApplyRescheduleWindow(c.state, hasAvailability)
		if !hasAvailability {
			c.logger.Info("Wizard: no slots to reschedule booking to, trainer=%d, month=%04d-%02d", trainerID, year, int(month))
			c.record(TransitionNoAvailability)
		}
	}
	return nil
}

func (c *Controller) refreshSubscriptions(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	ticket := c.guard.Begin(FetchSubscriptions)
	c.loadingSubs = true
	c.mu.Unlock()

	subs, degraded := c.subLoader.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.guard.Valid(ticket) {
		c.logger.Warn("Wizard: dropping stale subscriptions")
		return ErrStaleResult
	}
	c.loadingSubs = false
	c.subs = subs
	c.subsLoaded = true
	c.subsDegraded = degraded

	wasBlocked := c.state.Blocked
	c.state = ApplySubscriptions(c.state, subs)
	if c.state.Blocked && !wasBlocked {
		c.record(TransitionBlocked)
	}
	return nil
}

func (c *Controller) viewLocked() View {
	now := c.slots.Now()
	v := View{
		State:                 c.state,
		TrainerID:             c.trainerID,
		Year:                  c.year,
		Month:                 c.month,
		EnabledDays:           []int{},
		DaySlots:              []domain.Slot{},
		LoadingSlots:          c.loadingSlots,
		LoadingSubscriptions:  c.loadingSubs,
		SlotsDegraded:         c.slotsDegraded,
		SubscriptionsDegraded: c.subsDegraded,
		Booking:               c.booking,
	}

	if c.monthData != nil {
		v.EnabledDays = get_available_slots.EnabledDays(c.year, c.month, c.monthData.Slots, now).Sorted()
		if c.state.SelectedDate != nil {
			v.DaySlots = get_available_slots.SlotsForDay(*c.state.SelectedDate, c.monthData.Slots, now)
		}
	}

	if c.state.Mode == domain.ModeNew {
		v.Subscription = c.subscriptionLocked()
	}

	switch {
	case c.state.Blocked:
		v.Notice = domain.NoCreditsMessage
	case c.state.NoAvailability:
		v.Notice = domain.NoAvailabilityMessage
	case c.state.Step == StepSelecting && c.state.SelectedDate != nil && c.monthData != nil && len(v.DaySlots) == 0:
		v.Notice = domain.NoSlotsForDayMessage
	}

	return v
}

func (c *Controller) subscriptionLocked() *domain.Subscription {
	if id := c.state.SelectedSubscriptionID; id != nil {
		for i := range c.subs {
			if c.subs[i].ID == *id {
				sub := c.subs[i]
				return &sub
			}
		}
	}
	sub, _ := credits.EligibleSubscription(c.subs)
	return sub
}

func (c *Controller) record(transition string) {
	if c.metrics != nil {
		c.metrics.RecordWizardTransition(transition)
	}
}

func findSlot(slots []domain.Slot, id int64) (domain.Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Slot{}, false
}
