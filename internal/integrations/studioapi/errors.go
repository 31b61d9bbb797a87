package studioapi

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainingPortal/pkg/apierror"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (запрос не удалось собрать или отправить)
	ErrInternal = errors.New("studioapi client: internal error")

	// ErrInvalidResponse возвращается при неожиданном статусе или теле ответа
	ErrInvalidResponse = errors.New("studioapi client: invalid response")

	// ErrValidationFailed возвращается, когда бэкенд отклонил запрос с кодом 4xx
	ErrValidationFailed = errors.New("studioapi client: validation failed")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("studioapi client: booking not found")
)

// ValidationError is a 4xx answer from the backend together with its classified body.
// errors.Is(err, ErrValidationFailed) holds for it.
type ValidationError struct {
	StatusCode int
	Payload    apierror.Payload
	Message    string // already extracted, safe to show to the user
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrValidationFailed, e.StatusCode, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func newValidationError(status int, body []byte) *ValidationError {
	payload := apierror.Parse(body)
	return &ValidationError{
		StatusCode: status,
		Payload:    payload,
		Message:    apierror.Extract(payload),
	}
}
