package credits

import "errors"

var (
	// ErrNoCreditsAvailable возвращается, когда для новой записи нет активного абонемента с остатком занятий.
	// Это ожидаемое блокирующее состояние, а не сбой.
	ErrNoCreditsAvailable = errors.New("no subscription with remaining sessions")

	// ErrInvalidMode возвращается при неизвестном режиме мастера
	ErrInvalidMode = errors.New("invalid booking mode")
)
