// Package projects implements the project, task, and member endpoints.
//
// Every single-project operation is scoped to the caller's owner_id inside
// the repository query itself, so a project owned by another user produces
// the same 404 as a project that does not exist.
package projects

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/db/models"
	"github.com/taskhub/taskhub/internal/db/repositories"
	"github.com/taskhub/taskhub/internal/middleware"
)

// Handlers handles project, task, and member endpoints
type Handlers struct {
	projectRepo *repositories.ProjectRepository
	taskRepo    *repositories.TaskRepository
	memberRepo  *repositories.ProjectMemberRepository
	orgRepo     *repositories.OrganizationRepository
	userRepo    *repositories.UserRepository
}

// NewHandlers creates a new projects Handlers instance
func NewHandlers(db *sqlx.DB) *Handlers {
	return &Handlers{
		projectRepo: repositories.NewProjectRepository(db),
		taskRepo:    repositories.NewTaskRepository(db),
		memberRepo:  repositories.NewProjectMemberRepository(db),
		orgRepo:     repositories.NewOrganizationRepository(db),
		userRepo:    repositories.NewUserRepository(db),
	}
}

// idParam parses a numeric path parameter. A non-numeric id can never match
// a row, so it is reported as NotFound rather than BadRequest.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}

// ownedProject loads the project identified by the given path parameter,
// scoped to the caller. Writes the error response and returns ok=false when
// the project is missing or owned by someone else.
func (h *Handlers) ownedProject(c *gin.Context, param string) (*models.User, *models.Project, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, nil, false
	}

	id, ok := idParam(c, param)
	if !ok {
		return nil, nil, false
	}

	project, err := h.projectRepo.GetOwnedBy(c.Request.Context(), id, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return nil, nil, false
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, nil, false
	}

	return user, project, true
}

// parseDate accepts a bare date (2006-01-02) or an RFC3339 timestamp.
func parseDate(value string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	return &t, nil
}

// normalizeName trims surrounding whitespace; a blank name is rejected by
// the handlers before any row is written.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
