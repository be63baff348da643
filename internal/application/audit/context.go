// Package audit records who changed what, and serves the activity log.
package audit

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor stores the authenticated user's ID in the context
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the authenticated user's ID, or nil when the system acts
func ActorFrom(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok && id != uuid.Nil {
		return &id
	}
	return nil
}
