package entity

import "time"

// User is the aggregate root for the player-account domain.
// Password holds a bcrypt hash, never the plaintext.
//
// Roles carry set semantics: the repository layer never produces
// duplicates and no code depends on their order.
type User struct {
	ID                int64
	Name              string
	Email             string
	Password          string
	DateOfBirth       *time.Time // date component only
	PlayingPosition   string
	ProfilePictureURL string
	ContactNumber     string
	Roles             []Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RoleNames reduces the role set to its name strings.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
