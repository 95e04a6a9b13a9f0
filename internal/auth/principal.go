package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Principal is the verified identity of a request, rebuilt from token
// claims on every call. It is never persisted and never mutated after
// construction.
type Principal struct {
	UserID   uuid.UUID
	Username string
}

// PrincipalFromClaims projects validated claims into a Principal.
func PrincipalFromClaims(claims *Claims) (Principal, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, errors.New("invalid subject claim")
	}
	if claims.Username == "" {
		return Principal{}, errors.New("missing username claim")
	}
	return Principal{UserID: id, Username: claims.Username}, nil
}

type contextKey struct{}

// WithPrincipal attaches the principal to a request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFromContext retrieves the principal set by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
