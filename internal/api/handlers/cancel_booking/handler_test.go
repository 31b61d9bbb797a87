package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

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

func (m *mockBookingService) Cancel(ctx context.Context, booking *domain.Booking, reason *string) (*domain.Booking, error) {
	args := m.Called(ctx, booking, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:     4,
		Status: status,
		Slot:   domain.Slot{ID: 8, StartsAt: start, EndsAt: start.Add(time.Hour)},
	}
}

func serve(svc BookingService, target, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, time.UTC, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return w
}

func TestHandle_Success(t *testing.T) {
	svc := new(mockBookingService)
	booking := testBooking(domain.StatusConfirmed)
	reason := "feeling ill"
	svc.On("GetByID", mock.Anything, int64(4)).Return(booking, nil)
	svc.On("Cancel", mock.Anything, booking, &reason).Return(testBooking(domain.StatusCanceled), nil)

	w := serve(svc, "/bookings/4/cancel", `{"reason":"  feeling ill "}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"canceled"`)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyReasonIsOmitted(t *testing.T) {
	svc := new(mockBookingService)
	booking := testBooking(domain.StatusConfirmed)
	svc.On("GetByID", mock.Anything, int64(4)).Return(booking, nil)
	svc.On("Cancel", mock.Anything, booking, (*string)(nil)).Return(testBooking(domain.StatusCanceled), nil)

	w := serve(svc, "/bookings/4/cancel", `{"reason":"   "}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"window closed", bookings.ErrModificationWindowClosed, http.StatusConflict, domain.ModificationWindowClosedMessage},
		{"already canceled", bookings.ErrBookingCanceled, http.StatusConflict, domain.BookingCanceledMessage},
		{"rejected", &bookings.ValidationError{Message: "Too late to cancel."}, http.StatusUnprocessableEntity, "Too late to cancel."},
		{"internal", bookings.ErrInternal, http.StatusBadGateway, "Could not complete the requested action."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockBookingService)
			svc.On("GetByID", mock.Anything, int64(4)).Return(testBooking(domain.StatusConfirmed), nil)
			svc.On("Cancel", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(svc, "/bookings/4/cancel", ``)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandle_NotFound(t *testing.T) {
	svc := new(mockBookingService)
	svc.On("GetByID", mock.Anything, int64(4)).Return(nil, bookings.ErrBookingNotFound)

	w := serve(svc, "/bookings/4/cancel", ``)

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_InvalidID(t *testing.T) {
	w := serve(new(mockBookingService), "/bookings/abc/cancel", ``)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
