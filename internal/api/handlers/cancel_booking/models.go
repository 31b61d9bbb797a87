package cancel_booking

import (
	"strings"

	"github.com/m04kA/SMC-TrainingPortal/internal/service/bookings/models"
)

// maxReasonLength ограничение на длину причины отмены
const maxReasonLength = 500

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса; пустая причина не отправляется
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	if r.Reason == nil {
		return &models.CancelBookingRequest{}
	}

	reason := strings.TrimSpace(*r.Reason)
	if reason == "" {
		return &models.CancelBookingRequest{}
	}
	if len([]rune(reason)) > maxReasonLength {
		reason = string([]rune(reason)[:maxReasonLength])
	}
	return &models.CancelBookingRequest{Reason: &reason}
}
