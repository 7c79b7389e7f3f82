package handlers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"staffsync/internal/auth"
	"staffsync/internal/events"
	"staffsync/internal/webhook"
)

// envelopeActor maps the request actor onto the envelope contract. The role
// travels lower-cased on the wire.
func envelopeActor(a auth.Actor) events.Actor {
	actor := events.Actor{
		UserID: a.UserID(),
		Role:   strings.ToLower(a.Role),
	}
	if a.User != nil {
		actor.Name = a.User.Name
		actor.Email = a.User.Email
	}
	return actor
}

// forward posts one action envelope to the automation webhook and reports
// whether it went out. The local mutation already succeeded by the time this
// runs, so delivery problems are logged, not propagated.
func forward(ctx context.Context, wh *webhook.Client, lg *zap.SugaredLogger, ev events.Envelope) bool {
	if wh == nil || !wh.Enabled() {
		return false
	}
	if _, err := wh.Send(ctx, ev); err != nil {
		lg.Warnw("action forward failed", "actionType", ev.ActionType, "error", err)
		return false
	}
	return true
}
