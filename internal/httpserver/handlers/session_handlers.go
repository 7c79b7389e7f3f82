package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"staffsync/internal/auth"
	"staffsync/internal/store"
)

// Login activates a roster user. There are no credentials by design; the
// session is a demo singleton pointing at a user id.
func Login(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.UserID == "" {
			respondError(w, http.StatusBadRequest, "userId required")
			return
		}
		var found bool
		for _, u := range st.LoadUsers() {
			if u.ID == req.UserID {
				found = true
				break
			}
		}
		if !found {
			respondError(w, http.StatusNotFound, "unknown user")
			return
		}
		if err := st.SetActiveUser(req.UserID); err != nil {
			lg.Errorw("session save failed", "error", err)
			respondError(w, http.StatusInternalServerError, "session save failed")
			return
		}
		respondJSON(w, map[string]any{"activeUserId": req.UserID})
	}
}

// Logout resets the session singleton to its logged-out state.
func Logout(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.ClearSession(); err != nil {
			lg.Errorw("session clear failed", "error", err)
			respondError(w, http.StatusInternalServerError, "session clear failed")
			return
		}
		respondJSON(w, map[string]any{"activeUserId": ""})
	}
}

// Me reports the resolved actor for the current request.
func Me(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := auth.FromContext(r.Context())
		respondJSON(w, map[string]any{
			"user":     a.User,
			"role":     a.Role,
			"loggedIn": a.LoggedIn,
		})
	}
}
