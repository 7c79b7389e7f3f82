package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"staffsync/internal/auth"
	"staffsync/internal/events"
	"staffsync/internal/store"
	"staffsync/internal/webhook"
)

func ListUsers(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, st.LoadUsers())
	}
}

// SetUserRole patches one roster entry's role and forwards the change.
func SetUserRole(st *store.Store, wh *webhook.Client, orgID string, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Role == "" {
			respondError(w, http.StatusBadRequest, "role required")
			return
		}
		var found bool
		for _, u := range st.LoadUsers() {
			if u.ID == id {
				found = true
				break
			}
		}
		if !found {
			respondError(w, http.StatusNotFound, "unknown user")
			return
		}
		if err := st.UpdateUser(id, store.UserPatch{Role: &req.Role}); err != nil {
			lg.Errorw("role update failed", "error", err)
			respondError(w, http.StatusInternalServerError, "role update failed")
			return
		}
		forwarded := forward(r.Context(), wh, lg, events.New(events.Envelope{
			ActionType:     events.ActionUserRoleSet,
			Actor:          envelopeActor(auth.FromContext(r.Context())),
			OrganizationID: orgID,
			Payload: map[string]any{
				"targetUserId": id,
				"role":         req.Role,
			},
		}))
		respondJSON(w, map[string]any{"updated": true, "forwarded": forwarded})
	}
}
