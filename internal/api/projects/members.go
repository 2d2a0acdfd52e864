// members.go implements handlers for the project member roster. Only the
// project owner may view or change the roster.
package projects

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/taskhub/internal/db/models"
	"github.com/taskhub/taskhub/internal/db/repositories"
)

// @Summary      List members
// @Description  List the members of a project owned by the caller, with a nested user summary.
// @Tags         Members
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  map[string]interface{}  "members: []models.ProjectMemberWithUser"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id}/members [get]
// ListMembersHandler lists the members of a project
// GET /api/v1/projects/:id/members
func (h *Handlers) ListMembersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		members, err := h.memberRepo.ListWithUsers(c.Request.Context(), project.ID)
		if err != nil {
			slog.Error("failed to list members", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"members": members})
	}
}

// AddMemberRequest represents the request to enroll a user in a project
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// @Summary      Add member
// @Description  Enroll a user, identified by email, in a project owned by the caller. Any role other than lead is stored as member.
// @Tags         Members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  int               true  "Project ID"
// @Param        request    body  AddMemberRequest  true  "Member payload"
// @Success      201  {object}  map[string]interface{}  "member: models.ProjectMemberWithUser"
// @Failure      400  {object}  map[string]interface{}  "Unknown email or already a member"
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /api/v1/projects/{id}/members [post]
// AddMemberHandler enrolls a user in a project
// POST /api/v1/projects/:id/members
func (h *Handlers) AddMemberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		var req AddMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		target, err := h.userRepo.GetByEmail(c.Request.Context(), email)
		if err != nil {
			slog.Error("failed to look up user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
			return
		}
		if target == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No user found with this email"})
			return
		}

		existing, err := h.memberRepo.Get(c.Request.Context(), project.ID, target.ID)
		if err != nil {
			slog.Error("failed to check membership", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this project"})
			return
		}

		role := models.ProjectRoleMember
		if req.Role == models.ProjectRoleLead {
			role = models.ProjectRoleLead
		}

		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    target.ID,
			Role:      role,
		}
		if err := h.memberRepo.Create(c.Request.Context(), member); err != nil {
			// Two concurrent adds for the same pair: the existence check above
			// is best-effort, the unique constraint is authoritative.
			if repositories.IsUniqueViolation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this project"})
				return
			}
			slog.Error("failed to add member", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"member": models.ProjectMemberWithUser{
			ID:        member.ID,
			ProjectID: member.ProjectID,
			UserID:    member.UserID,
			Role:      member.Role,
			CreatedAt: member.CreatedAt,
			UpdatedAt: member.UpdatedAt,
			User:      target.Summary(),
		}})
	}
}

// @Summary      Remove member
// @Description  Remove a membership row from a project owned by the caller.
// @Tags         Members
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Param        memberId   path  int  true  "Membership ID"
// @Success      200  {object}  map[string]interface{}  "message: string"
// @Failure      404  {object}  map[string]interface{}  "Project or member not found"
// @Router       /api/v1/projects/{id}/members/{memberId} [delete]
// RemoveMemberHandler removes a member from a project
// DELETE /api/v1/projects/:id/members/:memberId
func (h *Handlers) RemoveMemberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, project, ok := h.ownedProject(c, "id")
		if !ok {
			return
		}

		memberID, ok := idParam(c, "memberId")
		if !ok {
			return
		}

		// Scoped to the project so a membership id from another project 404s.
		member, err := h.memberRepo.GetByID(c.Request.Context(), memberID, project.ID)
		if err != nil {
			slog.Error("failed to get member", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
			return
		}
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}

		if err := h.memberRepo.Delete(c.Request.Context(), member.ID); err != nil {
			slog.Error("failed to remove member", "error", err, "project_id", project.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
	}
}
