package studioapi

import "context"

type tokenKey struct{}

// WithToken кладет токен пользователя в контекст; клиент пересылает его бэкенду
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext возвращает токен пользователя, если он есть
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
