package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/integrations/studioapi"
	"github.com/m04kA/SMC-TrainingPortal/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingPortal/internal/wizard"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

var now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixedTime struct {
	t time.Time
}

func (f *fixedTime) Now() time.Time { return f.t }

type emptySlots struct{}

func (emptySlots) Now() time.Time { return now }

func (emptySlots) Execute(_ context.Context, req get_available_slots.Request) (*get_available_slots.Response, error) {
	return &get_available_slots.Response{
		Year:        req.Year,
		Month:       req.Month,
		Slots:       []domain.Slot{},
		EnabledDays: get_available_slots.DaySet{},
	}, nil
}

type noSubs struct{}

func (noSubs) Load(context.Context) ([]domain.Subscription, bool) {
	return []domain.Subscription{}, false
}

type noLifecycle struct{}

func (noLifecycle) Create(context.Context, int64, *int64) (*domain.Booking, error) {
	return nil, nil
}

func (noLifecycle) Reschedule(context.Context, *domain.Booking, int64) (*domain.Booking, error) {
	return nil, nil
}

type gaugeMetrics struct {
	active int
}

func (g *gaugeMetrics) SetActiveWizards(n int) { g.active = n }

func newTestService(ttl time.Duration, limit int) (*Service, *gaugeMetrics, *fixedTime) {
	deps := wizard.Deps{
		Slots:         emptySlots{},
		Subscriptions: noSubs{},
		Lifecycle:     noLifecycle{},
		Logger:        logger.NewNop(),
	}
	metrics := &gaugeMetrics{}
	clock := &fixedTime{t: now}

	svc := NewService(deps, ttl, limit, metrics, logger.NewNop())
	svc.timeProvider = clock
	return svc, metrics, clock
}

func newWizard() wizard.Config {
	return wizard.Config{Mode: domain.ModeNew, TrainerID: 7}
}

func TestStartAndGet(t *testing.T) {
	svc, metrics, _ := newTestService(time.Minute, 0)

	id, view, err := svc.Start(context.Background(), newWizard())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, wizard.StepSelecting, view.State.Step)
	assert.Equal(t, 1, metrics.active)

	controller, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(7), controller.View().TrainerID)
}

func TestStart_InvalidConfig(t *testing.T) {
	svc, _, _ := newTestService(time.Minute, 0)

	_, _, err := svc.Start(context.Background(), wizard.Config{Mode: domain.ModeNew})

	assert.ErrorIs(t, err, wizard.ErrInvalidConfig)
	assert.Equal(t, 0, svc.Count())
}

func TestStart_Limit(t *testing.T) {
	svc, _, _ := newTestService(time.Minute, 1)

	_, _, err := svc.Start(context.Background(), newWizard())
	require.NoError(t, err)

	_, _, err = svc.Start(context.Background(), newWizard())
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestGet_Unknown(t *testing.T) {
	svc, _, _ := newTestService(time.Minute, 0)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGet_OtherOwner(t *testing.T) {
	svc, _, _ := newTestService(time.Minute, 0)
	alice := studioapi.WithToken(context.Background(), "alice-token")
	bob := studioapi.WithToken(context.Background(), "bob-token")

	id, _, err := svc.Start(alice, newWizard())
	require.NoError(t, err)

	_, err = svc.Get(bob, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Close(bob, id), ErrSessionNotFound)
	assert.Equal(t, 1, svc.Count())

	controller, err := svc.Get(alice, id)
	require.NoError(t, err)
	assert.False(t, controller.Closed())
	require.NoError(t, svc.Close(alice, id))
	assert.Equal(t, 0, svc.Count())
}

func TestClose(t *testing.T) {
	svc, metrics, _ := newTestService(time.Minute, 0)
	id, _, err := svc.Start(context.Background(), newWizard())
	require.NoError(t, err)
	controller, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	require.NoError(t, svc.Close(context.Background(), id))

	assert.True(t, controller.Closed())
	assert.Equal(t, 0, metrics.active)
	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Close(context.Background(), id), ErrSessionNotFound)
}

func TestSweep_EvictsIdleOnly(t *testing.T) {
	svc, metrics, clock := newTestService(10*time.Minute, 0)

	idle, _, err := svc.Start(context.Background(), newWizard())
	require.NoError(t, err)

	clock.t = now.Add(8 * time.Minute)
	fresh, _, err := svc.Start(context.Background(), newWizard())
	require.NoError(t, err)

	evicted := svc.Sweep(now.Add(11 * time.Minute))

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, metrics.active)
	_, err = svc.Get(context.Background(), idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(context.Background(), fresh)
	assert.NoError(t, err)
}

func TestSweep_GetExtendsLifetime(t *testing.T) {
	svc, _, clock := newTestService(10*time.Minute, 0)
	id, _, err := svc.Start(context.Background(), newWizard())
	require.NoError(t, err)

	clock.t = now.Add(9 * time.Minute)
	_, err = svc.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Sweep(now.Add(15*time.Minute)))
	assert.Equal(t, 1, svc.Count())
}

func TestCloseAll(t *testing.T) {
	svc, metrics, _ := newTestService(time.Minute, 0)
	for i := 0; i < 3; i++ {
		_, _, err := svc.Start(context.Background(), newWizard())
		require.NoError(t, err)
	}

	svc.CloseAll()

	assert.Equal(t, 0, svc.Count())
	assert.Equal(t, 0, metrics.active)
}
