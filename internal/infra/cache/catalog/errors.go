package catalog

import "errors"

var (
	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("catalog.cache: redis error")

	// ErrDecode возвращается, когда значение в кэше не читается
	ErrDecode = errors.New("catalog.cache: failed to decode value")
)
