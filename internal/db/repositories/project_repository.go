// project_repository.go implements ProjectRepository. All single-project
// lookups are scoped by owner so that authorization failures surface as
// "not found" rather than leaking another user's data.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListByOwner retrieves all projects owned by the given user, newest first
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Project, error) {
	query := `
		SELECT id, name, description, status, visibility, owner_id, organization_id,
		       start_date, end_date, created_at, updated_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	projects := make([]*models.Project, 0)
	if err := r.db.SelectContext(ctx, &projects, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// GetOwnedBy retrieves a project by ID only if it is owned by ownerID.
// Projects owned by other users are indistinguishable from missing ones.
func (r *ProjectRepository) GetOwnedBy(ctx context.Context, id, ownerID int64) (*models.Project, error) {
	query := `
		SELECT id, name, description, status, visibility, owner_id, organization_id,
		       start_date, end_date, created_at, updated_at
		FROM projects
		WHERE id = $1 AND owner_id = $2
	`

	project := &models.Project{}
	err := r.db.GetContext(ctx, project, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// Create inserts a new project and fills in the generated ID and timestamps
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (name, description, status, visibility, owner_id,
		                      organization_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.Visibility,
		project.OwnerID,
		project.OrganizationID,
		project.StartDate,
		project.EndDate,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Update persists all mutable fields of the project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, visibility = $5,
		    start_date = $6, end_date = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		project.Visibility,
		project.StartDate,
		project.EndDate,
	).Scan(&project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// Delete removes a project. Tasks and memberships cascade at the database level.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
