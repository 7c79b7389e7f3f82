package store

import (
	"time"

	"staffsync/internal/models"
)

// LoadRequests returns the manager inbox, newest first. The fallback for an
// absent or corrupt slot is the empty inbox.
func (s *Store) LoadRequests() []models.Request {
	var reqs []models.Request
	if !s.loadSlot(requestsKey, &reqs) {
		return nil
	}
	return reqs
}

// SaveRequests replaces the inbox and notifies.
func (s *Store) SaveRequests(reqs []models.Request) error {
	return s.saveSlot(requestsKey, TopicRequests, reqs)
}

// RequestInput carries the caller-supplied fields of a new inbox item.
type RequestInput struct {
	Text         string
	CategoryHint string
	Kind         string
	SopID        string
	SopTitle     string
	Message      string
	LocationName string
	MediaName    string
}

// AddRequest prepends an open request stamped with a local id and creation
// time, and returns the stored record. CreatedAt is never touched again.
func (s *Store) AddRequest(in RequestInput) (models.Request, error) {
	kind := in.Kind
	if kind == "" {
		kind = models.RequestKindGuide
	}
	now := s.now()
	req := models.Request{
		ID:           s.newID("req", now),
		Text:         in.Text,
		CategoryHint: in.CategoryHint,
		Kind:         kind,
		SopID:        in.SopID,
		SopTitle:     in.SopTitle,
		Message:      in.Message,
		LocationName: in.LocationName,
		MediaName:    in.MediaName,
		Status:       models.RequestStatusOpen,
		CreatedAt:    now.UTC().Format(time.RFC3339),
	}
	next := append([]models.Request{req}, s.LoadRequests()...)
	if err := s.SaveRequests(next); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// AddFeedback records issue feedback on an SOP as an inbox item.
func (s *Store) AddFeedback(sopID, sopTitle, message string) (models.Request, error) {
	return s.AddRequest(RequestInput{
		Kind:     models.RequestKindFeedback,
		SopID:    sopID,
		SopTitle: sopTitle,
		Message:  message,
	})
}

// RequestPatch holds per-field updates. Nil fields are preserved.
type RequestPatch struct {
	Status *string
}

// UpdateRequest applies patch to the matching item; a missing id is a no-op.
func (s *Store) UpdateRequest(id string, patch RequestPatch) error {
	reqs := s.LoadRequests()
	for i := range reqs {
		if reqs[i].ID != id {
			continue
		}
		if patch.Status != nil {
			reqs[i].Status = *patch.Status
		}
	}
	return s.SaveRequests(reqs)
}

// MarkRequestDone closes an inbox item.
func (s *Store) MarkRequestDone(id string) error {
	done := models.RequestStatusDone
	return s.UpdateRequest(id, RequestPatch{Status: &done})
}

// DeleteRequest dismisses at most one item; a missing id is a no-op.
func (s *Store) DeleteRequest(id string) error {
	reqs := s.LoadRequests()
	next := reqs[:0]
	for _, req := range reqs {
		if req.ID != id {
			next = append(next, req)
		}
	}
	return s.SaveRequests(next)
}
