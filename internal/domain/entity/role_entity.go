package entity

// Role represents an authorization role.
// Many-to-many with User via user_roles; seeded by migrations and
// read-only from the application's perspective.
type Role struct {
	ID   int64
	Name string
}
