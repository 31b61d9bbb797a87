package bookings

import (
	"errors"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/apierror"
)

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrValidationFailed возвращается, когда бэкенд отклонил операцию (4xx)
	ErrValidationFailed = errors.New("booking validation failed")

	// ErrModificationWindowClosed возвращается, когда до начала занятия осталось 24 часа или меньше.
	// Запрос к бэкенду в этом случае не отправляется.
	ErrModificationWindowClosed = errors.New("modification window closed")

	// ErrBookingCanceled возвращается при попытке изменить отмененную запись
	ErrBookingCanceled = errors.New("booking is canceled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ValidationError отказ бэкенда с сообщением для пользователя
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// UserMessage возвращает текст ошибки, который можно показать пользователю.
// Технические ошибки заменяются общим сообщением.
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrModificationWindowClosed):
		return domain.ModificationWindowClosedMessage
	case errors.Is(err, ErrBookingCanceled):
		return domain.BookingCanceledMessage
	default:
		return apierror.FallbackMessage
	}
}
