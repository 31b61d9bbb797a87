package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

var (
	day12   = time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	slotDay = domain.Slot{ID: 1, TrainerID: 3, StartsAt: day12.Add(9 * time.Hour), EndsAt: day12.Add(10 * time.Hour), IsActive: true}
)

func activeSubs() []domain.Subscription {
	return []domain.Subscription{{ID: 5, Status: domain.SubscriptionActive, SessionsTotal: 4, SessionsUsed: 1}}
}

func exhaustedSubs() []domain.Subscription {
	return []domain.Subscription{{ID: 5, Status: domain.SubscriptionActive, SessionsTotal: 4, SessionsUsed: 4}}
}

func confirming(t *testing.T, mode domain.BookingMode) State {
	t.Helper()
	s, err := SelectDate(Initial(mode, nil), day12)
	require.NoError(t, err)
	s, err = SelectSlot(s, slotDay, activeSubs())
	require.NoError(t, err)
	require.Equal(t, StepConfirming, s.Step)
	return s
}

func TestInitial(t *testing.T) {
	s := Initial(domain.ModeNew, nil)
	assert.Equal(t, State{Step: StepSelecting, Mode: domain.ModeNew}, s)

	id := int64(42)
	r := Initial(domain.ModeReschedule, &id)
	require.NotNil(t, r.ReschedulingBookingID)
	assert.Equal(t, int64(42), *r.ReschedulingBookingID)
}

func TestSelectSlot_ResolvesSubscription(t *testing.T) {
	s := confirming(t, domain.ModeNew)

	require.NotNil(t, s.SelectedSubscriptionID)
	assert.Equal(t, int64(5), *s.SelectedSubscriptionID)
	assert.Equal(t, slotDay.ID, s.SelectedSlot.ID)
}

func TestSelectSlot_RescheduleLeavesSubscriptionEmpty(t *testing.T) {
	s, err := SelectDate(Initial(domain.ModeReschedule, nil), day12)
	require.NoError(t, err)

	s, err = SelectSlot(s, slotDay, exhaustedSubs())

	require.NoError(t, err)
	assert.Equal(t, StepConfirming, s.Step)
	assert.Nil(t, s.SelectedSubscriptionID)
	assert.False(t, s.Blocked)
}

func TestSelectSlot_NoCreditsBlocks(t *testing.T) {
	s, err := SelectDate(Initial(domain.ModeNew, nil), day12)
	require.NoError(t, err)

	s, err = SelectSlot(s, slotDay, exhaustedSubs())

	require.NoError(t, err)
	assert.True(t, s.Blocked)
	assert.Equal(t, StepSelecting, s.Step)
	assert.Nil(t, s.SelectedSlot)
}

func TestSelectSlot_WrongDay(t *testing.T) {
	s, err := SelectDate(Initial(domain.ModeNew, nil), day12.AddDate(0, 0, 1))
	require.NoError(t, err)

	_, err = SelectSlot(s, slotDay, activeSubs())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestSelectSlot_WithoutDate(t *testing.T) {
	_, err := SelectSlot(Initial(domain.ModeNew, nil), slotDay, activeSubs())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBack_KeepsDate(t *testing.T) {
	s, err := Back(confirming(t, domain.ModeNew))

	require.NoError(t, err)
	assert.Equal(t, StepSelecting, s.Step)
	assert.Nil(t, s.SelectedSlot)
	assert.Nil(t, s.SelectedSubscriptionID)
	require.NotNil(t, s.SelectedDate)
	assert.True(t, s.SelectedDate.Equal(day12))
}

func TestBack_NotFromSelecting(t *testing.T) {
	_, err := Back(Initial(domain.ModeNew, nil))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmFailed_KeepsSelectionForRetry(t *testing.T) {
	s, err := BeginSubmit(confirming(t, domain.ModeNew))
	require.NoError(t, err)

	s = ConfirmFailed(s, "already booked")

	assert.Equal(t, StepConfirming, s.Step)
	assert.Equal(t, "already booked", s.Error)
	assert.True(t, s.CanConfirm())
	assert.Equal(t, slotDay.ID, s.SelectedSlot.ID)

	s, err = BeginSubmit(s)
	require.NoError(t, err)
	assert.Empty(t, s.Error)
}

func TestBeginSubmit_Twice(t *testing.T) {
	s, err := BeginSubmit(confirming(t, domain.ModeNew))
	require.NoError(t, err)

	_, err = BeginSubmit(s)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	_, err = Back(s)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookAnother_YieldsInitialState(t *testing.T) {
	for _, mode := range []domain.BookingMode{domain.ModeNew, domain.ModeReschedule} {
		s, err := BeginSubmit(confirming(t, mode))
		require.NoError(t, err)
		s = ConfirmSucceeded(s, &domain.Booking{ID: 100})
		require.Equal(t, StepSuccess, s.Step)

		reset, err := BookAnother(s)

		require.NoError(t, err)
		assert.Equal(t, Initial(domain.ModeNew, nil), reset)
	}
}

func TestBookAnother_OnlyFromSuccess(t *testing.T) {
	_, err := BookAnother(confirming(t, domain.ModeNew))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplySubscriptions(t *testing.T) {
	s := ApplySubscriptions(Initial(domain.ModeNew, nil), exhaustedSubs())
	assert.True(t, s.Blocked)

	s = ApplySubscriptions(s, activeSubs())
	assert.False(t, s.Blocked)

	r := ApplySubscriptions(Initial(domain.ModeReschedule, nil), nil)
	assert.False(t, r.Blocked)

	c := ApplySubscriptions(confirming(t, domain.ModeNew), exhaustedSubs())
	assert.False(t, c.Blocked, "blocked is only reachable from selecting")
}

func TestApplyRescheduleWindow(t *testing.T) {
	s := ApplyRescheduleWindow(Initial(domain.ModeReschedule, nil), false)
	assert.True(t, s.NoAvailability)
	assert.False(t, s.CanSelect())

	_, err := SelectDate(s, day12)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	n := ApplyRescheduleWindow(Initial(domain.ModeNew, nil), false)
	assert.False(t, n.NoAvailability)
}
