// Package pagination drains list endpoints that answer either with a bare JSON array
// or with a {count, next, previous, results} envelope.
package pagination

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDecode возвращается, когда тело не является ни массивом, ни конвертом со страницей
	ErrDecode = errors.New("pagination: failed to decode page")

	// ErrPageLoop возвращается, когда next указывает на уже загруженную страницу
	ErrPageLoop = errors.New("pagination: next page already visited")
)

// Page одна страница списка
type Page[T any] struct {
	Results []T
	Next    string // пустая строка, если страниц больше нет
}

type envelope[T any] struct {
	Count   *int    `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// DecodePage разбирает тело ответа списка.
// Голый массив трактуется как единственная страница.
func DecodePage[T any](body []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Page[T]{}, fmt.Errorf("%w: empty body", ErrDecode)
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return Page[T]{Results: items}, nil

	case '{':
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Page[T]{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if env.Results == nil && env.Count == nil && env.Next == nil {
			return Page[T]{}, fmt.Errorf("%w: object without results", ErrDecode)
		}
		page := Page[T]{Results: env.Results}
		if env.Next != nil {
			page.Next = *env.Next
		}
		return page, nil

	default:
		return Page[T]{}, fmt.Errorf("%w: unexpected token %q", ErrDecode, trimmed[0])
	}
}

// FetchFunc загружает одну страницу по её URL
type FetchFunc[T any] func(ctx context.Context, pageURL string) (Page[T], error)

// Drain загружает все страницы начиная с firstURL, пока бэкенд не перестанет отдавать next.
// Между страницами проверяется ctx, чтобы отменённая загрузка не продолжалась.
func Drain[T any](ctx context.Context, firstURL string, fetch FetchFunc[T]) ([]T, error) {
	result := make([]T, 0)
	visited := make(map[string]struct{})

	next := firstURL
	for next != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, seen := visited[next]; seen {
			return nil, fmt.Errorf("%w: %s", ErrPageLoop, next)
		}
		visited[next] = struct{}{}

		page, err := fetch(ctx, next)
		if err != nil {
			return nil, err
		}
		result = append(result, page.Results...)
		next = page.Next
	}

	return result, nil
}
