package auth

import (
	"context"

	"staffsync/internal/models"
	"staffsync/internal/roles"
)

type ctxKey string

const actorKey ctxKey = "actor"

// Actor is the resolved identity a request runs as: the active user (nil for
// an empty roster), the effective role, and whether a session is live.
type Actor struct {
	User     *models.User
	Role     string
	LoggedIn bool
}

// UserID returns the active user's id, or "" when nobody is resolved.
func (a Actor) UserID() string {
	if a.User == nil {
		return ""
	}
	return a.User.ID
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// FromContext returns the request actor, defaulting to a logged-out guest.
func FromContext(ctx context.Context) Actor {
	if v, ok := ctx.Value(actorKey).(Actor); ok {
		return v
	}
	return Actor{Role: roles.Guest}
}
