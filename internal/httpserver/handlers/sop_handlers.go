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

func ListSOPs(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, st.LoadSOPs())
	}
}

// GetSOP resolves one record. A dangling id degrades to a not-found
// descriptor rather than an empty success.
func GetSOP(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sop, ok := st.FindSOP(chi.URLParam(r, "id"))
		if !ok {
			respondError(w, http.StatusNotFound, "sop not found")
			return
		}
		respondJSON(w, sop)
	}
}

func CreateSOP(st *store.Store, wh *webhook.Client, orgID string, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID       string          `json:"id"`
			TaskName string          `json:"taskName"`
			Category string          `json:"category"`
			Poster   string          `json:"poster"`
			Duration string          `json:"duration"`
			Video    models.SOPVideo `json:"video"`
			Steps    models.SOPSteps `json:"steps"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.TaskName == "" {
			respondError(w, http.StatusBadRequest, "taskName required")
			return
		}
		sop, err := st.AddSOP(models.SOP{
			ID:       req.ID,
			TaskName: req.TaskName,
			Category: req.Category,
			Poster:   req.Poster,
			Duration: req.Duration,
			Video:    req.Video,
			Steps:    req.Steps,
		})
		if err != nil {
			lg.Errorw("sop save failed", "error", err)
			respondError(w, http.StatusInternalServerError, "sop save failed")
			return
		}
		forwarded := forward(r.Context(), wh, lg, events.New(events.Envelope{
			ActionType:     events.ActionSOPCreate,
			Actor:          envelopeActor(auth.FromContext(r.Context())),
			OrganizationID: orgID,
			Payload: map[string]any{
				"sopId":    sop.ID,
				"taskName": sop.TaskName,
				"category": sop.Category,
				"videoUrl": sop.Video.URL,
			},
		}))
		respondJSON(w, map[string]any{"sop": sop, "forwarded": forwarded})
	}
}

func UpdateSOP(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			TaskName *string          `json:"taskName"`
			Category *string          `json:"category"`
			Poster   *string          `json:"poster"`
			Duration *string          `json:"duration"`
			Video    *models.SOPVideo `json:"video"`
			Steps    *models.SOPSteps `json:"steps"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, ok := st.FindSOP(id); !ok {
			respondError(w, http.StatusNotFound, "sop not found")
			return
		}
		err := st.UpdateSOP(id, store.SOPPatch{
			TaskName: req.TaskName,
			Category: req.Category,
			Poster:   req.Poster,
			Duration: req.Duration,
			Video:    req.Video,
			Steps:    req.Steps,
		})
		if err != nil {
			lg.Errorw("sop update failed", "error", err)
			respondError(w, http.StatusInternalServerError, "sop update failed")
			return
		}
		respondJSON(w, map[string]any{"updated": true})
	}
}

func DeleteSOP(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.DeleteSOP(chi.URLParam(r, "id")); err != nil {
			lg.Errorw("sop delete failed", "error", err)
			respondError(w, http.StatusInternalServerError, "sop delete failed")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
