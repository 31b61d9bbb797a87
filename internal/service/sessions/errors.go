package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда мастер не найден или уже закрыт
	ErrSessionNotFound = errors.New("sessions: wizard session not found")

	// ErrTooManySessions возвращается при превышении лимита открытых мастеров
	ErrTooManySessions = errors.New("sessions: too many open wizard sessions")
)
