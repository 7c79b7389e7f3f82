package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staffsync/internal/bus"
	"staffsync/internal/config"
	"staffsync/internal/storage"
	"staffsync/internal/store"
	"staffsync/internal/webhook"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	st := store.New(storage.NewMemory(), bus.New(nil, nil))
	wh := webhook.New(config.Webhook{}, zap.NewNop().Sugar())
	return NewRouter(st, wh, "org-demo", zap.NewNop().Sugar()), st
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, userID string) {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/v1/session/login", `{"userId":"`+userID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/healthz", "").Code)
}

func TestGuestIsLockedOut(t *testing.T) {
	h, _ := newTestRouter(t)
	assert.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodGet, "/v1/sops", "").Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodGet, "/v1/requests", "").Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodGet, "/v1/admin/users", "").Code)
}

func TestLoginUnknownUser(t *testing.T) {
	h, _ := newTestRouter(t)
	w := doJSON(t, h, http.MethodPost, "/v1/session/login", `{"userId":"usr-404"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaffCanBrowseButNotManage(t *testing.T) {
	h, _ := newTestRouter(t)
	login(t, h, "usr-3")

	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/v1/sops", "").Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodGet, "/v1/requests", "").Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodPost, "/v1/sops", `{"taskName":"x"}`).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, h, http.MethodGet, "/v1/admin/users", "").Code)
}

func TestMeReflectsSession(t *testing.T) {
	h, _ := newTestRouter(t)

	w := doJSON(t, h, http.MethodGet, "/v1/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Role     string `json:"role"`
		LoggedIn bool   `json:"loggedIn"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "Guest", me.Role)
	assert.False(t, me.LoggedIn)

	login(t, h, "usr-2")
	w = doJSON(t, h, http.MethodGet, "/v1/me", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "Manager", me.Role)
	assert.True(t, me.LoggedIn)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/v1/session/logout", "").Code)
	w = doJSON(t, h, http.MethodGet, "/v1/me", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "Guest", me.Role)
}

func TestGuideRequestFlow(t *testing.T) {
	h, st := newTestRouter(t)
	login(t, h, "usr-3")

	w := doJSON(t, h, http.MethodPost, "/v1/requests/guide", `{"text":"how to set up the terrace","categoryHint":"Floor"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Request   struct{ ID, Kind, Status string }
		Forwarded bool
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "guide", resp.Request.Kind)
	assert.Equal(t, "open", resp.Request.Status)
	assert.False(t, resp.Forwarded, "no webhook configured")

	login(t, h, "usr-2")
	w = doJSON(t, h, http.MethodGet, "/v1/requests", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/v1/requests/"+resp.Request.ID+"/done", "").Code)
	got := st.LoadRequests()
	require.Len(t, got, 1)
	assert.Equal(t, "done", got[0].Status)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodDelete, "/v1/requests/"+resp.Request.ID, "").Code)
	assert.Empty(t, st.LoadRequests())
}

func TestManagerSOPLifecycle(t *testing.T) {
	h, st := newTestRouter(t)
	login(t, h, "usr-2")

	w := doJSON(t, h, http.MethodPost, "/v1/sops", `{"taskName":"Terrace opening","category":"Floor","video":{"url":"blob:abc"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		SOP struct{ ID string } `json:"sop"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.SOP.ID)

	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/v1/sops/"+created.SOP.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, h, http.MethodGet, "/v1/sops/sop-dangling", "").Code)

	require.Equal(t, http.StatusOK,
		doJSON(t, h, http.MethodPatch, "/v1/sops/"+created.SOP.ID, `{"category":"Bar"}`).Code)
	sop, ok := st.FindSOP(created.SOP.ID)
	require.True(t, ok)
	assert.Equal(t, "Bar", sop.Category)
	assert.Equal(t, "Terrace opening", sop.TaskName)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodDelete, "/v1/sops/"+created.SOP.ID, "").Code)
	_, ok = st.FindSOP(created.SOP.ID)
	assert.False(t, ok)
}

func TestAdminRoleChangeTakesEffectNextRequest(t *testing.T) {
	h, _ := newTestRouter(t)
	login(t, h, "usr-1")

	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/v1/admin/users", "").Code)
	require.Equal(t, http.StatusOK,
		doJSON(t, h, http.MethodPatch, "/v1/admin/users/usr-3/role", `{"role":"Manager"}`).Code)
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, h, http.MethodPatch, "/v1/admin/users/usr-99/role", `{"role":"Admin"}`).Code)

	// The promoted user can now reach manager routes.
	login(t, h, "usr-3")
	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/v1/requests", "").Code)
}
