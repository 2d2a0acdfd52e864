// tasks.go implements handlers for tasks nested under a project. All task
// operations require the caller to own the parent project.
package projects

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub/internal/db/models"
	"github.com/taskhub/taskhub/internal/telemetry"
)

// @Summary      List tasks
// @Description  List all tasks in a project owned by the caller, oldest first.
// @Tags         Tasks
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  map[string]interface{}  "tasks: []models.Task"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id}/tasks [get]
// ListTasksHandler lists the tasks of a project
// GET /api/v1/projects/:id/tasks
func (h *Handlers) ListTasksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		tasks, err := h.taskRepo.ListByProject(c.Request.Context(), project.ID)
		if err != nil {
			slog.Error("failed to list tasks", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
	AssigneeID  *int64  `json:"assigneeId"`
}

// @Summary      Create task
// @Description  Create a task in a project owned by the caller. Unknown status or priority values fall back to todo and medium.
// @Tags         Tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  int                true  "Project ID"
// @Param        request    body  CreateTaskRequest  true  "Task payload"
// @Success      201  {object}  map[string]interface{}  "task: models.Task"
// @Failure      400  {object}  map[string]interface{}  "Invalid input"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id}/tasks [post]
// CreateTaskHandler creates a task in a project
// POST /api/v1/projects/:id/tasks
func (h *Handlers) CreateTaskHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		title := normalizeName(req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Task title is required"})
			return
		}

		task := &models.Task{
			ProjectID:   project.ID,
			Title:       title,
			Description: req.Description,
			Status:      models.NormalizeTaskStatus(req.Status),
			Priority:    models.NormalizeTaskPriority(req.Priority),
			AssigneeID:  req.AssigneeID,
		}

		if req.DueDate != nil {
			t, err := parseDate(*req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate"})
				return
			}
			task.DueDate = t
		}

		if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
			slog.Error("failed to create task", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}

		telemetry.TasksCreatedTotal.WithLabelValues(task.Priority).Inc()

		c.JSON(http.StatusCreated, gin.H{"task": task})
	}
}
