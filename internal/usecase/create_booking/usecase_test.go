package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/credits"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

var now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type mockSlotsClient struct {
	mock.Mock
}

func (m *mockSlotsClient) ListSlots(ctx context.Context, trainerID int64, year int, month time.Month) ([]domain.Slot, error) {
	args := m.Called(ctx, trainerID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

type stubSubscriptions struct {
	subs []domain.Subscription
}

func (s stubSubscriptions) Load(context.Context) ([]domain.Subscription, bool) {
	return s.subs, false
}

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) Create(ctx context.Context, slotID int64, subscriptionID *int64) (*domain.Booking, error) {
	args := m.Called(ctx, slotID, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func slotOn(id int64, day, hour int) domain.Slot {
	start := time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
	return domain.Slot{ID: id, TrainerID: 3, StartsAt: start, EndsAt: start.Add(time.Hour), IsActive: true}
}

func newUseCase(slots *mockSlotsClient, subs []domain.Subscription, creator *mockCreator) *UseCase {
	uc := NewUseCase(slots, stubSubscriptions{subs: subs}, creator, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{}
	return uc
}

func request(slotID int64, day int) *Request {
	return &Request{TrainerID: 3, SlotID: slotID, Date: time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)}
}

var activeSubs = []domain.Subscription{
	{ID: 1, Status: domain.SubscriptionActive, SessionsTotal: 5, SessionsUsed: 5},
	{ID: 2, Status: domain.SubscriptionActive, SessionsTotal: 5, SessionsUsed: 1},
}

func TestExecute_Success(t *testing.T) {
	slots := new(mockSlotsClient)
	creator := new(mockCreator)
	slots.On("ListSlots", mock.Anything, int64(3), 2026, time.March).Return([]domain.Slot{slotOn(7, 12, 10)}, nil)
	subID := int64(2)
	creator.On("Create", mock.Anything, int64(7), &subID).Return(&domain.Booking{ID: 40, Status: domain.StatusConfirmed}, nil)

	resp, err := newUseCase(slots, activeSubs, creator).Execute(context.Background(), request(7, 12))

	require.NoError(t, err)
	assert.Equal(t, int64(40), resp.Booking.ID)
	assert.Equal(t, int64(2), resp.Subscription.ID)
	creator.AssertExpectations(t)
}

func TestExecute_NoCreditsSendsNothing(t *testing.T) {
	slots := new(mockSlotsClient)
	creator := new(mockCreator)
	slots.On("ListSlots", mock.Anything, int64(3), 2026, time.March).Return([]domain.Slot{slotOn(7, 12, 10)}, nil)

	_, err := newUseCase(slots, activeSubs[:1], creator).Execute(context.Background(), request(7, 12))

	assert.ErrorIs(t, err, credits.ErrNoCreditsAvailable)
	creator.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	blocked := slotOn(8, 12, 11)
	blocked.IsBlocked = true

	tests := []struct {
		name  string
		slots []domain.Slot
		req   *Request
	}{
		{"unknown slot", []domain.Slot{slotOn(7, 12, 10)}, request(9, 12)},
		{"blocked slot", []domain.Slot{blocked}, request(8, 12)},
		{"slot on another day", []domain.Slot{slotOn(7, 13, 10)}, request(7, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := new(mockSlotsClient)
			slots.On("ListSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.slots, nil)

			_, err := newUseCase(slots, activeSubs, new(mockCreator)).Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		})
	}
}

func TestExecute_PastDate(t *testing.T) {
	_, err := newUseCase(new(mockSlotsClient), activeSubs, new(mockCreator)).Execute(context.Background(), request(7, 9))

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	_, err := newUseCase(new(mockSlotsClient), activeSubs, new(mockCreator)).Execute(context.Background(), &Request{TrainerID: 3})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotsFetchFailure(t *testing.T) {
	slots := new(mockSlotsClient)
	slots.On("ListSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := newUseCase(slots, activeSubs, new(mockCreator)).Execute(context.Background(), request(7, 12))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_BackendRejection(t *testing.T) {
	slots := new(mockSlotsClient)
	creator := new(mockCreator)
	slots.On("ListSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.Slot{slotOn(7, 12, 10)}, nil)
	creator.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &bookings.ValidationError{Message: "That slot has just been taken."})

	_, err := newUseCase(slots, activeSubs, creator).Execute(context.Background(), request(7, 12))

	assert.ErrorIs(t, err, bookings.ErrValidationFailed)
	assert.Equal(t, "That slot has just been taken.", bookings.UserMessage(err))
}
