package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-TrainingPortal/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TrainerID int64  `json:"trainerId"`
	SlotID    int64  `json:"slotId"`
	Date      string `json:"date"` // "2026-03-12"
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking           *models.BookingResponse `json:"booking"`
	SubscriptionID    int64                   `json:"subscriptionId"`
	SessionsRemaining int                     `json:"sessionsRemaining"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TrainerID: r.TrainerID,
		SlotID:    r.SlotID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель.
// Остаток на абонементе считается по данным до списания.
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *CreateBookingResponse {
	remaining := resp.Subscription.SessionsRemaining() - 1
	if remaining < 0 {
		remaining = 0
	}
	return &CreateBookingResponse{
		Booking:           models.FromDomainBooking(resp.Booking, loc),
		SubscriptionID:    resp.Subscription.ID,
		SessionsRemaining: remaining,
	}
}
