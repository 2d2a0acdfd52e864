// projects.go implements handlers for project CRUD with owner scoping.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/db/models"
	"github.com/taskhub/taskhub/internal/middleware"
	"github.com/taskhub/taskhub/internal/telemetry"
)

// @Summary      List projects
// @Description  List all projects owned by the caller, newest first.
// @Tags         Projects
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "projects: []models.Project"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Router       /api/v1/projects [get]
// ListHandler lists the caller's projects
// GET /api/v1/projects
func (h *Handlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		projects, err := h.projectRepo.ListByOwner(c.Request.Context(), user.ID)
		if err != nil {
			slog.Error("failed to list projects", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Visibility     string  `json:"visibility"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	OrganizationID *int64  `json:"organizationId"`
}

// @Summary      Create project
// @Description  Create a project owned by the caller, resolving or auto-provisioning its organization, and enroll the caller as the lead member.
// @Tags         Projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body  CreateProjectRequest  true  "Project payload"
// @Success      201  {object}  map[string]interface{}  "project: models.Project"
// @Failure      400  {object}  map[string]interface{}  "Invalid input"
// @Failure      403  {object}  map[string]interface{}  "Insufficient organization role"
// @Router       /api/v1/projects [post]
// CreateHandler creates a new project
// POST /api/v1/projects
func (h *Handlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		name := normalizeName(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
			return
		}

		// An unrecognized visibility falls back to the default on create;
		// on update the same value is rejected.
		visibility := req.Visibility
		if !models.ValidVisibility(visibility) {
			visibility = models.VisibilityPrivate
		}

		startDate, endDate, dateErr := parseDateRange(req.StartDate, req.EndDate)
		if dateErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": dateErr.Error()})
			return
		}

		orgID, role, err := h.resolveOrganization(c.Request.Context(), user, req.OrganizationID)
		if err != nil {
			slog.Error("failed to resolve organization", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
			return
		}
		if !auth.CanCreateProject(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient organization role to create projects"})
			return
		}

		project := &models.Project{
			Name:           name,
			Description:    req.Description,
			Status:         models.ProjectStatusActive,
			Visibility:     visibility,
			OwnerID:        user.ID,
			OrganizationID: &orgID,
			StartDate:      startDate,
			EndDate:        endDate,
		}
		if err := h.projectRepo.Create(c.Request.Context(), project); err != nil {
			slog.Error("failed to create project", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
			return
		}

		// The creator is always enrolled as the project lead. Membership is
		// display metadata; a failure here should not orphan the project.
		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    user.ID,
			Role:      models.ProjectRoleLead,
		}
		if err := h.memberRepo.Create(c.Request.Context(), member); err != nil {
			slog.Error("failed to enroll project creator", "error", err, "project_id", project.ID)
		}

		telemetry.ProjectsCreatedTotal.WithLabelValues(project.Visibility).Inc()

		c.JSON(http.StatusCreated, gin.H{"project": project})
	}
}

// resolveOrganization implements the organization resolution policy for
// project creation: an explicit id wins, then the caller's first membership,
// and finally a freshly provisioned personal organization owned by the caller.
func (h *Handlers) resolveOrganization(ctx context.Context, user *models.User, explicitID *int64) (int64, string, error) {
	if explicitID != nil {
		member, err := h.orgRepo.GetMember(ctx, *explicitID, user.ID)
		if err != nil {
			return 0, "", err
		}
		if member == nil {
			// Not a member: report no role so the caller gets 403.
			return *explicitID, "", nil
		}
		return member.OrganizationID, member.Role, nil
	}

	member, err := h.orgRepo.FirstMembershipForUser(ctx, user.ID)
	if err != nil {
		return 0, "", err
	}
	if member != nil {
		return member.OrganizationID, member.Role, nil
	}

	org, err := h.provisionPersonalOrg(ctx, user)
	if err != nil {
		return 0, "", err
	}
	return org.ID, models.OrgRoleOwner, nil
}

// provisionPersonalOrg creates a personal organization for a user with no
// memberships and enrolls them as its owner.
func (h *Handlers) provisionPersonalOrg(ctx context.Context, user *models.User) (*models.Organization, error) {
	display := user.Email
	if user.FullName != nil && strings.TrimSpace(*user.FullName) != "" {
		display = strings.TrimSpace(*user.FullName)
	}

	local := user.Email
	if at := strings.Index(local, "@"); at > 0 {
		local = local[:at]
	}

	org := &models.Organization{
		Name: display + "'s Workspace",
		// The user id suffix keeps slugs unique without a retry loop.
		Slug:    fmt.Sprintf("%s-%d", slugify(local), user.ID),
		OwnerID: user.ID,
	}
	if err := h.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	member := &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           models.OrgRoleOwner,
	}
	if err := h.orgRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return org, nil
}

// slugify lowercases and replaces non-alphanumeric runs with single hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// parseDateRange parses the optional start and end date strings.
func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if start != nil {
		t, err := parseDate(*start)
		if err != nil {
			return nil, nil, errors.New("Invalid startDate")
		}
		startDate = t
	}
	if end != nil {
		t, err := parseDate(*end)
		if err != nil {
			return nil, nil, errors.New("Invalid endDate")
		}
		endDate = t
	}
	return startDate, endDate, nil
}

// @Summary      Get project
// @Description  Get a single project owned by the caller.
// @Tags         Projects
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  map[string]interface{}  "project: models.Project"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id} [get]
// ShowHandler retrieves a single project
// GET /api/v1/projects/:id
func (h *Handlers) ShowHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{"project": project})
	}
}

// UpdateProjectRequest represents a partial project update. Absent fields
// are left untouched.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Visibility  *string `json:"visibility"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// @Summary      Update project
// @Description  Partially update a project owned by the caller. Blank names and unknown status or visibility values are rejected.
// @Tags         Projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "Project ID"
// @Param        request  body  UpdateProjectRequest  true  "Fields to update"
// @Success      200  {object}  map[string]interface{}  "project: models.Project"
// @Failure      400  {object}  map[string]interface{}  "Invalid input"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id} [put]
// UpdateHandler partially updates a project
// PUT /api/v1/projects/:id
func (h *Handlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		var req UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if req.Name != nil {
			name := normalizeName(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Project name cannot be blank"})
				return
			}
			project.Name = name
		}
		if req.Description != nil {
			project.Description = req.Description
		}
		if req.Status != nil {
			if !models.ValidProjectStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
				return
			}
			project.Status = *req.Status
		}
		if req.Visibility != nil {
			if !models.ValidVisibility(*req.Visibility) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project visibility"})
				return
			}
			project.Visibility = *req.Visibility
		}
		if req.StartDate != nil {
			t, err := parseDate(*req.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
				return
			}
			project.StartDate = t
		}
		if req.EndDate != nil {
			t, err := parseDate(*req.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
				return
			}
			project.EndDate = t
		}

		if err := h.projectRepo.Update(c.Request.Context(), project); err != nil {
			slog.Error("failed to update project", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"project": project})
	}
}

// @Summary      Delete project
// @Description  Delete a project owned by the caller. Tasks and memberships are removed by the database cascade.
// @Tags         Projects
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  map[string]interface{}  "message: string"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id} [delete]
// DeleteHandler deletes a project
// DELETE /api/v1/projects/:id
func (h *Handlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		if err := h.projectRepo.Delete(c.Request.Context(), project.ID); err != nil {
			slog.Error("failed to delete project", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
	}
}
