package wizard

import "errors"

var (
	// ErrInvalidTransition возвращается, когда действие недоступно на текущем шаге
	ErrInvalidTransition = errors.New("wizard: action not allowed in current state")

	// ErrSubmitInProgress возвращается при повторном подтверждении, пока первое еще выполняется
	ErrSubmitInProgress = errors.New("wizard: submit already in progress")

	// ErrNotReady возвращается, когда нужные для шага данные еще загружаются
	ErrNotReady = errors.New("wizard: data is still loading")

	// ErrSlotUnavailable возвращается, когда слот не входит в список бронируемых слотов выбранного дня
	ErrSlotUnavailable = errors.New("wizard: slot is not available")

	// ErrDateInPast возвращается при выборе прошедшего дня
	ErrDateInPast = errors.New("wizard: date is in the past")

	// ErrStaleResult возвращается, когда результат загрузки устарел и не был применен
	ErrStaleResult = errors.New("wizard: result superseded by a newer request")

	// ErrClosed возвращается после закрытия мастера
	ErrClosed = errors.New("wizard: closed")

	// ErrInvalidConfig возвращается при некорректных параметрах запуска
	ErrInvalidConfig = errors.New("wizard: invalid configuration")
)
