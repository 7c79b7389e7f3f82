package store

import "staffsync/internal/models"

// LoadSession returns the singleton login state. Any read failure resets to
// the logged-out session.
func (s *Store) LoadSession() models.Session {
	var sess models.Session
	if !s.loadSlot(sessionKey, &sess) {
		return models.Session{}
	}
	return sess
}

// SaveSession replaces the singleton and notifies.
func (s *Store) SaveSession(sess models.Session) error {
	return s.saveSlot(sessionKey, TopicSession, sess)
}

// SetActiveUser records a login.
func (s *Store) SetActiveUser(userID string) error {
	sess := s.LoadSession()
	sess.ActiveUserID = userID
	return s.SaveSession(sess)
}

// ClearSession records a logout.
func (s *Store) ClearSession() error {
	return s.SaveSession(models.Session{})
}
