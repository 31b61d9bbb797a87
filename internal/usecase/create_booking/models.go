package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Request модель запроса на прямую запись без мастера
type Request struct {
	TrainerID int64
	SlotID    int64
	Date      time.Time // день слота в зоне пользователя
}

// Response модель ответа
type Response struct {
	Booking      *domain.Booking
	Subscription *domain.Subscription // абонемент, с которого списано занятие
}
