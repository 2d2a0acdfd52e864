package models

import "time"

// Project membership roles. Stored and returned but not consulted by any
// authorization check: only the project owner may read or mutate a project.
const (
	ProjectRoleLead   = "lead"
	ProjectRoleMember = "member"
)

// ProjectMember represents a user's membership in a project. The
// (project_id, user_id) pair is unique.
type ProjectMember struct {
	ID        int64     `db:"id" json:"id"`
	ProjectID int64     `db:"project_id" json:"projectId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ProjectMemberWithUser includes the member's public user summary for display.
type ProjectMemberWithUser struct {
	ID        int64       `db:"id" json:"id"`
	ProjectID int64       `db:"project_id" json:"projectId"`
	UserID    int64       `db:"user_id" json:"userId"`
	Role      string      `db:"role" json:"role"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
	User      UserSummary `db:"user" json:"user"`
}
