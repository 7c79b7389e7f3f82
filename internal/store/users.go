package store

import "staffsync/internal/models"

// LoadUsers returns the roster. The seed roster backs an absent, corrupt, or
// empty slot; a non-empty persisted roster is returned as-is so seeding never
// resurrects users a later mutation removed.
func (s *Store) LoadUsers() []models.User {
	var users []models.User
	if !s.loadSlot(usersKey, &users) || len(users) == 0 {
		return seedUsers()
	}
	return users
}

// SaveUsers replaces the roster and notifies.
func (s *Store) SaveUsers(users []models.User) error {
	return s.saveSlot(usersKey, TopicUsers, users)
}

// UserPatch holds the per-field roster updates. Nil fields are preserved.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// UpdateUser applies patch to the matching user. A missing id leaves the
// roster unchanged; that is a no-op, not an error.
func (s *Store) UpdateUser(id string, patch UserPatch) error {
	users := s.LoadUsers()
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Name != nil {
			users[i].Name = *patch.Name
		}
		if patch.Email != nil {
			users[i].Email = *patch.Email
		}
		if patch.Role != nil {
			users[i].Role = *patch.Role
		}
	}
	return s.SaveUsers(users)
}
