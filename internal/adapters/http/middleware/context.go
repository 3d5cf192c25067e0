package middleware

import "context"

type contextKey string

const userContextKey contextKey = "auth.user"

func SetUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userContextKey, email)
}

// GetUser returns the authenticated subject email, if any.
func GetUser(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userContextKey).(string)
	return email, ok
}
