package get_booking_history

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) History(ctx context.Context, bookingID int64, limit uint64) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, bookingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/history", h.Handle).Methods(http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle(t *testing.T) {
	svc := new(mockBookingService)
	bookingID := int64(4)
	svc.On("History", mock.Anything, int64(4), uint64(10)).Return([]domain.JournalEntry{
		{ID: 2, Action: domain.ActionCancel, BookingID: &bookingID, Outcome: domain.OutcomeDenied, CreatedAt: time.Now()},
	}, nil)

	w := serve(svc, "/bookings/4/history?limit=10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"cancel"`)
}

func TestHandle_InvalidLimit(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(new(mockBookingService), "/bookings/4/history?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, serve(new(mockBookingService), "/bookings/4/history?limit=1000").Code)
}

func TestHandle_JournalUnavailable(t *testing.T) {
	svc := new(mockBookingService)
	svc.On("History", mock.Anything, int64(4), uint64(0)).Return(nil, errors.New("db down"))

	assert.Equal(t, http.StatusServiceUnavailable, serve(svc, "/bookings/4/history").Code)
}
