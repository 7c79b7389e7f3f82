// Package roles resolves the active user and ranks roles for access control.
// Resolution is pure; callers recompute it whenever the users or session
// collection signals a change.
package roles

import "staffsync/internal/models"

// Role strings are case-sensitive wire values. Anything else ranks as Guest
// for access control but is displayed verbatim.
const (
	Guest   = "Guest"
	Staff   = "Staff"
	Manager = "Manager"
	Admin   = "Admin"
)

// Rank places roles on the total order Guest < Staff < Manager < Admin.
// Unknown strings get least privilege; that default is intentional, not a
// missing case.
func Rank(role string) int {
	switch role {
	case Staff:
		return 1
	case Manager:
		return 2
	case Admin:
		return 3
	default:
		return 0
	}
}

// IsAllowed reports whether role meets the minimum role.
func IsAllowed(role, minRole string) bool {
	return Rank(role) >= Rank(minRole)
}

// ResolveActive returns the user the session points at, falling back to the
// first roster entry when the id dangles, or nil for an empty roster.
func ResolveActive(users []models.User, sess models.Session) *models.User {
	for i := range users {
		if users[i].ID == sess.ActiveUserID {
			return &users[i]
		}
	}
	if len(users) > 0 {
		return &users[0]
	}
	return nil
}

// ResolveRole derives the effective role: Guest when logged out, otherwise
// the user's role with Staff as the unset default.
func ResolveRole(user *models.User, loggedIn bool) string {
	if !loggedIn {
		return Guest
	}
	if user == nil || user.Role == "" {
		return Staff
	}
	return user.Role
}
