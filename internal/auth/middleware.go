package auth

import (
	"net/http"

	"staffsync/internal/roles"
	"staffsync/internal/store"
)

// SessionAuth resolves the active user and effective role from the session
// and users collections on every request, so a role change or logout in a
// sibling process takes effect at the next request without restarts.
func SessionAuth(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := st.LoadSession()
			users := st.LoadUsers()
			user := roles.ResolveActive(users, sess)
			loggedIn := sess.ActiveUserID != ""
			actor := Actor{
				User:     user,
				Role:     roles.ResolveRole(user, loggedIn),
				LoggedIn: loggedIn,
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole gates a route group by minimum role rank.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !roles.IsAllowed(FromContext(r.Context()).Role, minRole) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
