// Package identity carries the authenticated user through a request context.
package identity

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserFromContext reports the current user, if the request carries one.
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}
