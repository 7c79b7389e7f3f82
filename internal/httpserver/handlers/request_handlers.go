package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"staffsync/internal/auth"
	"staffsync/internal/events"
	"staffsync/internal/models"
	"staffsync/internal/store"
	"staffsync/internal/webhook"
)

func ListRequests(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs := st.LoadRequests()
		if reqs == nil {
			reqs = []models.Request{}
		}
		respondJSON(w, reqs)
	}
}

// CreateGuideRequest files a staff ask for a missing guide and forwards it
// to the automation endpoint.
func CreateGuideRequest(st *store.Store, wh *webhook.Client, orgID string, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text         string `json:"text"`
			CategoryHint string `json:"categoryHint"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Text == "" {
			respondError(w, http.StatusBadRequest, "text required")
			return
		}
		item, err := st.AddRequest(store.RequestInput{
			Text:         req.Text,
			CategoryHint: req.CategoryHint,
			Kind:         models.RequestKindGuide,
		})
		if err != nil {
			lg.Errorw("request save failed", "error", err)
			respondError(w, http.StatusInternalServerError, "request save failed")
			return
		}
		forwarded := forward(r.Context(), wh, lg, events.New(events.Envelope{
			ActionType:     events.ActionGuideRequest,
			Actor:          envelopeActor(auth.FromContext(r.Context())),
			OrganizationID: orgID,
			Payload: map[string]any{
				"requestRecordId": item.ID,
				"text":            item.Text,
				"categoryHint":    item.CategoryHint,
			},
		}))
		respondJSON(w, map[string]any{"request": item, "forwarded": forwarded})
	}
}

// CreateFeedback files issue feedback against an SOP. The sop reference is
// soft: a dangling id is stored as-is and tolerated downstream.
func CreateFeedback(st *store.Store, wh *webhook.Client, orgID string, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SopID   string `json:"sopId"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Message == "" {
			respondError(w, http.StatusBadRequest, "message required")
			return
		}
		title := ""
		if sop, ok := st.FindSOP(req.SopID); ok {
			title = sop.TaskName
		}
		item, err := st.AddFeedback(req.SopID, title, req.Message)
		if err != nil {
			lg.Errorw("feedback save failed", "error", err)
			respondError(w, http.StatusInternalServerError, "feedback save failed")
			return
		}
		forwarded := forward(r.Context(), wh, lg, events.New(events.Envelope{
			ActionType:     events.ActionSOPIssueReport,
			Actor:          envelopeActor(auth.FromContext(r.Context())),
			OrganizationID: orgID,
			Payload: map[string]any{
				"sopId":    item.SopID,
				"sopTitle": item.SopTitle,
				"message":  item.Message,
			},
		}))
		respondJSON(w, map[string]any{"request": item, "forwarded": forwarded})
	}
}

// CreateProblemReport files a location problem report, optionally naming an
// attached media file handled by the out-of-scope upload flow.
func CreateProblemReport(st *store.Store, wh *webhook.Client, orgID string, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message      string `json:"message"`
			LocationName string `json:"locationName"`
			MediaName    string `json:"mediaName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Message == "" {
			respondError(w, http.StatusBadRequest, "message required")
			return
		}
		item, err := st.AddRequest(store.RequestInput{
			Kind:         models.RequestKindProblem,
			Message:      req.Message,
			LocationName: req.LocationName,
			MediaName:    req.MediaName,
		})
		if err != nil {
			lg.Errorw("problem report save failed", "error", err)
			respondError(w, http.StatusInternalServerError, "problem report save failed")
			return
		}
		forwarded := forward(r.Context(), wh, lg, events.New(events.Envelope{
			ActionType:     events.ActionProblemReport,
			Actor:          envelopeActor(auth.FromContext(r.Context())),
			OrganizationID: orgID,
			Payload: map[string]any{
				"message":      item.Message,
				"locationName": item.LocationName,
				"mediaName":    item.MediaName,
			},
		}))
		respondJSON(w, map[string]any{"request": item, "forwarded": forwarded})
	}
}

// ResolveRequest closes an inbox item.
func ResolveRequest(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.MarkRequestDone(chi.URLParam(r, "id")); err != nil {
			lg.Errorw("request resolve failed", "error", err)
			respondError(w, http.StatusInternalServerError, "request resolve failed")
			return
		}
		respondJSON(w, map[string]any{"updated": true})
	}
}

// DismissRequest removes an inbox item.
func DismissRequest(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteRequest(chi.URLParam(r, "id")); err != nil {
			lg.Errorw("request dismiss failed", "error", err)
			respondError(w, http.StatusInternalServerError, "request dismiss failed")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
