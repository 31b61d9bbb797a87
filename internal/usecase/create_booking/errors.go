package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при попытке записаться на прошедший день
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrSlotNotAvailable возвращается, когда слот нельзя забронировать (занят, заблокирован, уже начался)
	ErrSlotNotAvailable = errors.New("slot not available")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase: internal error")
)
