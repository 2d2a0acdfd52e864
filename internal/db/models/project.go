package models

import "time"

// Project status values.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// Project visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityTeam    = "team"
	VisibilityPublic  = "public"
)

// ValidVisibility reports whether v is one of the enumerated visibility values.
func ValidVisibility(v string) bool {
	return v == VisibilityPrivate || v == VisibilityTeam || v == VisibilityPublic
}

// ValidProjectStatus reports whether s is one of the enumerated status values.
func ValidProjectStatus(s string) bool {
	return s == ProjectStatusActive || s == ProjectStatusArchived
}

// Project is a named unit of work owned by one user, optionally scoped to an
// organization. All query filters scope rows by owner_id; there is no row-level
// sharing beyond the explicit project_members list.
type Project struct {
	ID             int64      `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Description    *string    `db:"description" json:"description"`
	Status         string     `db:"status" json:"status"`
	Visibility     string     `db:"visibility" json:"visibility"`
	OwnerID        int64      `db:"owner_id" json:"-"`
	OrganizationID *int64     `db:"organization_id" json:"organizationId"`
	StartDate      *time.Time `db:"start_date" json:"startDate"`
	EndDate        *time.Time `db:"end_date" json:"endDate"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}
