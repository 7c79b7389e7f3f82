package store

import (
	"strings"

	"staffsync/internal/models"
)

// DefaultVideoURL is the placeholder clip baked into the SOP seed. A stored
// override carrying this URL is treated as stale, never as a real recording.
const DefaultVideoURL = "https://interactive-examples.mdn.mozilla.net/media/cc0-videos/flower.mp4"

// LoadSOPs returns the SOP records with the seed merge applied. The merge
// runs on every load, not just the first, so a shrunken or corrupted
// persisted set never loses the baseline seed entries' structural fields.
func (s *Store) LoadSOPs() []models.SOP {
	var stored []models.SOP
	if !s.loadSlot(sopsKey, &stored) {
		return seedSOPs()
	}
	seeds := seedSOPs()
	merged := make([]models.SOP, 0, len(stored))
	for _, item := range stored {
		merged = append(merged, mergeWithSeed(item, seeds))
	}
	return merged
}

// mergeWithSeed overlays a stored record on its matching seed. Stored fields
// win per-field, except the video slot: the stored URL replaces the seed's
// only when it looks like a real upload (a locally created blob reference, a
// locally hosted asset, or a non-default hosted URL). This guards against a
// stale placeholder silently overwriting a real recording.
func mergeWithSeed(item models.SOP, seeds []models.SOP) models.SOP {
	var seed *models.SOP
	for i := range seeds {
		if seeds[i].ID == item.ID {
			seed = &seeds[i]
			break
		}
	}
	if seed == nil {
		return item
	}
	out := item
	if out.TaskName == "" {
		out.TaskName = seed.TaskName
	}
	if out.Category == "" {
		out.Category = seed.Category
	}
	if out.Poster == "" {
		out.Poster = seed.Poster
	}
	if out.Duration == "" {
		out.Duration = seed.Duration
	}
	if !keepStoredVideo(item.Video.URL) {
		out.Video = seed.Video
	}
	return out
}

func keepStoredVideo(url string) bool {
	if strings.HasPrefix(url, "blob:") || strings.HasPrefix(url, "/sop-videos/") {
		return true
	}
	return url != "" && url != DefaultVideoURL
}

// SaveSOPs replaces the collection and notifies.
func (s *Store) SaveSOPs(sops []models.SOP) error {
	return s.saveSlot(sopsKey, TopicSOPs, sops)
}

// AddSOP prepends sop and returns it with its id filled in. An externally
// sourced id is kept; otherwise a local timestamp-based one is assigned.
func (s *Store) AddSOP(sop models.SOP) (models.SOP, error) {
	if sop.ID == "" {
		sop.ID = s.newID("sop", s.now())
	}
	next := append([]models.SOP{sop}, s.LoadSOPs()...)
	if err := s.SaveSOPs(next); err != nil {
		return models.SOP{}, err
	}
	return sop, nil
}

// SOPPatch holds per-field record updates. Nil fields are preserved.
type SOPPatch struct {
	TaskName *string
	Category *string
	Poster   *string
	Duration *string
	Video    *models.SOPVideo
	Steps    *models.SOPSteps
}

// UpdateSOP applies patch to the matching record; a missing id is a no-op.
func (s *Store) UpdateSOP(id string, patch SOPPatch) error {
	sops := s.LoadSOPs()
	for i := range sops {
		if sops[i].ID != id {
			continue
		}
		if patch.TaskName != nil {
			sops[i].TaskName = *patch.TaskName
		}
		if patch.Category != nil {
			sops[i].Category = *patch.Category
		}
		if patch.Poster != nil {
			sops[i].Poster = *patch.Poster
		}
		if patch.Duration != nil {
			sops[i].Duration = *patch.Duration
		}
		if patch.Video != nil {
			sops[i].Video = *patch.Video
		}
		if patch.Steps != nil {
			sops[i].Steps = *patch.Steps
		}
	}
	return s.SaveSOPs(sops)
}

// DeleteSOP removes at most one record; a missing id is a no-op.
func (s *Store) DeleteSOP(id string) error {
	sops := s.LoadSOPs()
	next := sops[:0]
	for _, sop := range sops {
		if sop.ID != id {
			next = append(next, sop)
		}
	}
	return s.SaveSOPs(next)
}

// FindSOP resolves a soft reference by id. ok is false for a dangling id so
// callers can degrade to a not-found state.
func (s *Store) FindSOP(id string) (models.SOP, bool) {
	for _, sop := range s.LoadSOPs() {
		if sop.ID == id {
			return sop, true
		}
	}
	return models.SOP{}, false
}
