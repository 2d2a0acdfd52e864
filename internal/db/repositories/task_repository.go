// task_repository.go implements TaskRepository for tasks scoped to a project.
package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByProject retrieves all tasks in a project, oldest first
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*models.Task, error) {
	query := `
		SELECT id, project_id, title, description, status, priority, due_date,
		       assignee_id, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at ASC
	`

	tasks := make([]*models.Task, 0)
	if err := r.db.SelectContext(ctx, &tasks, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Create inserts a new task and fills in the generated ID and timestamps
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (project_id, title, description, status, priority,
		                   due_date, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.AssigneeID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}
