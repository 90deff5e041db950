package auth

import (
	"context"

	"chirp/domain"
)

// contextKey is a private type for context keys so nothing outside this
// package can collide with them.
type contextKey string

const (
	userKey   contextKey = "user"
	schemeKey contextKey = "scheme"
)

// Credential schemes a request can authenticate with.
const (
	SchemeApiKey = "api_key"
	SchemeBearer = "bearer"
)

// WithUser stashes the authenticated user and the credential scheme it was
// resolved from in the context.
func WithUser(ctx context.Context, user *domain.User, scheme string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, schemeKey, scheme)
}

// UserFromContext returns the authenticated user, or nil if the request
// carried no resolvable credential.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(userKey).(*domain.User); ok {
		return user
	}
	return nil
}

// SchemeFromContext returns the credential scheme the request authenticated
// with, or the empty string.
func SchemeFromContext(ctx context.Context) string {
	if scheme, ok := ctx.Value(schemeKey).(string); ok {
		return scheme
	}
	return ""
}
