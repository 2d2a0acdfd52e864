// project_member_repository.go implements ProjectMemberRepository for the
// roster of users enrolled in a project.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/db/models"
)

// ProjectMemberRepository handles database operations for project members
type ProjectMemberRepository struct {
	db *sqlx.DB
}

// NewProjectMemberRepository creates a new project member repository
func NewProjectMemberRepository(db *sqlx.DB) *ProjectMemberRepository {
	return &ProjectMemberRepository{db: db}
}

// ListWithUsers retrieves all members of a project together with the
// referenced user's id, full name and email, in enrollment order.
func (r *ProjectMemberRepository) ListWithUsers(ctx context.Context, projectID int64) ([]*models.ProjectMemberWithUser, error) {
	query := `
		SELECT pm.id, pm.project_id, pm.user_id, pm.role, pm.created_at, pm.updated_at,
		       u.id AS "user.id", u.full_name AS "user.full_name", u.email AS "user.email"
		FROM project_members pm
		INNER JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = $1
		ORDER BY pm.id ASC
	`

	members := make([]*models.ProjectMemberWithUser, 0)
	if err := r.db.SelectContext(ctx, &members, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

// Get retrieves a membership by project and user
func (r *ProjectMemberRepository) Get(ctx context.Context, projectID, userID int64) (*models.ProjectMember, error) {
	query := `
		SELECT id, project_id, user_id, role, created_at, updated_at
		FROM project_members
		WHERE project_id = $1 AND user_id = $2
	`

	member := &models.ProjectMember{}
	err := r.db.GetContext(ctx, member, query, projectID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a membership by its own ID, scoped to a project
func (r *ProjectMemberRepository) GetByID(ctx context.Context, id, projectID int64) (*models.ProjectMember, error) {
	query := `
		SELECT id, project_id, user_id, role, created_at, updated_at
		FROM project_members
		WHERE id = $1 AND project_id = $2
	`

	member := &models.ProjectMember{}
	err := r.db.GetContext(ctx, member, query, id, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// Create enrolls a user in a project. Returns a unique-violation error when
// the user is already a member; callers should check IsUniqueViolation.
func (r *ProjectMemberRepository) Create(ctx context.Context, member *models.ProjectMember) error {
	query := `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		member.ProjectID,
		member.UserID,
		member.Role,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// Delete removes a membership
func (r *ProjectMemberRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM project_members WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
