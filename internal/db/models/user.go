// Package models defines the persistent data records for TaskHub.
// These are plain structs: relations are resolved by explicit repository
// queries, never by lazy loading, and JSON field names follow the camelCase
// contract the web frontend consumes.
package models

import "time"

// User roles govern the simple (non-organization) project creation rule.
const (
	RoleOwner  = "owner"
	RoleLead   = "lead"
	RoleMember = "member"
)

// User represents a registered account. The password hash never leaves the
// server: it is excluded from JSON serialization entirely.
type User struct {
	ID           int64     `db:"id" json:"id"`
	FullName     *string   `db:"full_name" json:"fullName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserSummary is the public projection of a user embedded in member listings
// and returned by the /auth/me endpoint.
type UserSummary struct {
	ID       int64   `db:"id" json:"id"`
	FullName *string `db:"full_name" json:"fullName"`
	Email    string  `db:"email" json:"email"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
