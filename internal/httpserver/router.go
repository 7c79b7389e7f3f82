package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"staffsync/internal/auth"
	"staffsync/internal/httpserver/handlers"
	"staffsync/internal/roles"
	"staffsync/internal/store"
	"staffsync/internal/webhook"
)

// NewRouter wires the role-gated API. Every route below /v1 resolves the
// actor from the session and users collections; role groups then gate by
// minimum rank.
func NewRouter(st *store.Store, wh *webhook.Client, orgID string, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Route("/v1", func(api chi.Router) {
		api.Use(auth.SessionAuth(st))

		api.Post("/session/login", handlers.Login(st, lg))
		api.Post("/session/logout", handlers.Logout(st, lg))
		api.Get("/me", handlers.Me(st, lg))

		api.Group(func(staff chi.Router) {
			staff.Use(auth.RequireRole(roles.Staff))
			staff.Get("/sops", handlers.ListSOPs(st, lg))
			staff.Get("/sops/{id}", handlers.GetSOP(st, lg))
			staff.Post("/requests/guide", handlers.CreateGuideRequest(st, wh, orgID, lg))
			staff.Post("/requests/feedback", handlers.CreateFeedback(st, wh, orgID, lg))
			staff.Post("/requests/problem", handlers.CreateProblemReport(st, wh, orgID, lg))
		})

		api.Group(func(manager chi.Router) {
			manager.Use(auth.RequireRole(roles.Manager))
			manager.Post("/sops", handlers.CreateSOP(st, wh, orgID, lg))
			manager.Patch("/sops/{id}", handlers.UpdateSOP(st, lg))
			manager.Delete("/sops/{id}", handlers.DeleteSOP(st, lg))
			manager.Get("/requests", handlers.ListRequests(st, lg))
			manager.Post("/requests/{id}/done", handlers.ResolveRequest(st, lg))
			manager.Delete("/requests/{id}", handlers.DismissRequest(st, lg))
		})

		api.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(roles.Admin))
			admin.Get("/admin/users", handlers.ListUsers(st, lg))
			admin.Patch("/admin/users/{id}/role", handlers.SetUserRole(st, wh, orgID, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
