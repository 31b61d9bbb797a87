package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

var now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) Now() time.Time { return now }

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	h := NewHandler(svc, time.UTC, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func bookingStartingIn(d time.Duration) *domain.Booking {
	start := now.Add(d)
	return &domain.Booking{ID: 4, Status: domain.StatusConfirmed, Slot: domain.Slot{ID: 8, StartsAt: start, EndsAt: start.Add(time.Hour)}}
}

func TestHandle_ActionsOutsideWindow(t *testing.T) {
	svc := new(mockBookingService)
	svc.On("GetByID", mock.Anything, int64(4)).Return(bookingStartingIn(48*time.Hour), nil)

	w := serve(svc, "/bookings/4")

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Actions)
	assert.True(t, resp.Actions.CanCancel)
	assert.True(t, resp.Actions.CanReschedule)
	assert.Equal(t, domain.FallbackTrainerName, resp.TrainerName)
}

func TestHandle_ActionsInsideWindow(t *testing.T) {
	svc := new(mockBookingService)
	svc.On("GetByID", mock.Anything, int64(4)).Return(bookingStartingIn(24*time.Hour), nil)

	w := serve(svc, "/bookings/4")

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Actions)
	assert.False(t, resp.Actions.CanCancel)
	assert.Equal(t, domain.ModificationWindowClosedMessage, resp.Actions.Reason)
}

func TestHandle_NotFound(t *testing.T) {
	svc := new(mockBookingService)
	svc.On("GetByID", mock.Anything, int64(4)).Return(nil, bookings.ErrBookingNotFound)

	assert.Equal(t, http.StatusNotFound, serve(svc, "/bookings/4").Code)
}
