package models

import "time"

// Organization membership roles. Only owner and admin may create projects
// inside the organization.
const (
	OrgRoleOwner  = "owner"
	OrgRoleAdmin  = "admin"
	OrgRoleMember = "member"
)

// OrganizationMember represents a user's membership in an organization.
// The (organization_id, user_id) pair is unique.
type OrganizationMember struct {
	ID             int64     `db:"id" json:"id"`
	OrganizationID int64     `db:"organization_id" json:"organizationId"`
	UserID         int64     `db:"user_id" json:"userId"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
