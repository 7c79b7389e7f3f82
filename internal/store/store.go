// Package store implements the four StaffSync collections (users, session,
// SOP records, requests) on top of a slot backend and the change bus. Each
// collection owns one persisted slot and one notification topic. Reads fail
// closed to seed/fallback values; corrupt or missing slots are never surfaced
// as errors.
package store

import (
	"encoding/json"
	"strconv"
	"time"

	"staffsync/internal/bus"
	"staffsync/internal/storage"
)

// Persisted slot keys, one per collection.
const (
	usersKey    = "staffsync_users_v1"
	sessionKey  = "staffsync_session_v1"
	sopsKey     = "staffsync_sops_v1"
	requestsKey = "staffsync_requests_v1"
)

// Notification topics, distinct per collection so a save never wakes
// subscribers of a sibling collection.
const (
	TopicUsers    = "staffsync-users-updated"
	TopicSession  = "staffsync-session-updated"
	TopicSOPs     = "staffsync-sops-updated"
	TopicRequests = "staffsync-requests-updated"
)

// Store is the injectable collection service. Construct one at startup with
// the chosen backend; the clock and id source are parameters so tests can
// pin them.
type Store struct {
	backend storage.Backend
	bus     *bus.Bus
	now     func() time.Time
	newID   func(prefix string, now time.Time) string
}

// Option adjusts a Store at construction time.
type Option func(*Store)

// WithClock overrides the wall clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides local id generation.
func WithIDGenerator(gen func(prefix string, now time.Time) string) Option {
	return func(s *Store) { s.newID = gen }
}

// New builds a Store over backend. b may be nil to disable notifications.
func New(backend storage.Backend, b *bus.Bus, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		bus:     b,
		now:     time.Now,
		newID:   timestampID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn on one collection topic. The returned unsubscribe is
// idempotent.
func (s *Store) Subscribe(topic string, fn func()) func() {
	return s.bus.Subscribe(topic, fn)
}

// loadSlot decodes the slot at key into out and reports success. Absent,
// unreadable, and malformed slots all fail closed to false so callers fall
// back to their seed value.
func (s *Store) loadSlot(key string, out any) bool {
	raw, ok, err := s.backend.Get(key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// saveSlot serializes v, persists it, and then signals the collection topic.
// The notify happens only after a successful write, so subscribers always
// re-read the new state.
func (s *Store) saveSlot(key, topic string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.backend.Set(key, raw); err != nil {
		return err
	}
	s.bus.Publish(topic)
	return nil
}

// timestampID mirrors the locally generated identifiers the collections use
// when no external id is supplied.
func timestampID(prefix string, now time.Time) string {
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
