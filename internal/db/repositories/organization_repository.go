// organization_repository.go implements OrganizationRepository, providing
// database queries for organizations and organization memberships.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/db/models"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *sqlx.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create inserts a new organization and fills in the generated ID and timestamps
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, slug, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, org.Name, org.Slug, org.OwnerID).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	query := `
		SELECT id, name, slug, owner_id, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	org := &models.Organization{}
	err := r.db.GetContext(ctx, org, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// === Organization Membership Operations ===

// AddMember adds a user to an organization with the given role
func (r *OrganizationRepository) AddMember(ctx context.Context, member *models.OrganizationMember) error {
	query := `
		INSERT INTO organization_members (organization_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		member.OrganizationID,
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

// GetMember retrieves a user's membership in an organization
func (r *OrganizationRepository) GetMember(ctx context.Context, orgID, userID int64) (*models.OrganizationMember, error) {
	query := `
		SELECT id, organization_id, user_id, role, created_at, updated_at
		FROM organization_members
		WHERE organization_id = $1 AND user_id = $2
	`

	member := &models.OrganizationMember{}
	err := r.db.GetContext(ctx, member, query, orgID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// FirstMembershipForUser retrieves the user's earliest organization
// membership. Used to resolve the default organization when a project is
// created without one.
func (r *OrganizationRepository) FirstMembershipForUser(ctx context.Context, userID int64) (*models.OrganizationMember, error) {
	query := `
		SELECT id, organization_id, user_id, role, created_at, updated_at
		FROM organization_members
		WHERE user_id = $1
		ORDER BY id ASC
		LIMIT 1
	`

	member := &models.OrganizationMember{}
	err := r.db.GetContext(ctx, member, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return member, nil
}
