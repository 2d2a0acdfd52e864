package models

import "time"

// Task status values.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// NormalizeTaskStatus maps s to a valid task status, falling back to "todo"
// for unknown values. Unknown inputs are deliberately not an error: the write
// succeeds with the default.
func NormalizeTaskStatus(s string) string {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return s
	default:
		return TaskStatusTodo
	}
}

// NormalizeTaskPriority maps p to a valid priority, falling back to "medium"
// for unknown values.
func NormalizeTaskPriority(p string) string {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityMedium
	}
}

// Task is a unit of work within a project, optionally assigned to a user.
// Deleting the project cascades to its tasks; deleting the assignee nulls
// the reference.
type Task struct {
	ID          int64      `db:"id" json:"id"`
	ProjectID   int64      `db:"project_id" json:"projectId"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Status      string     `db:"status" json:"status"`
	Priority    string     `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	AssigneeID  *int64     `db:"assignee_id" json:"assigneeId"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
