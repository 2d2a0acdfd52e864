// Package accounts implements the authentication boundary: registration,
// login, and the current-user identity endpoint.
package accounts

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/config"
	"github.com/taskhub/taskhub/internal/db/models"
	"github.com/taskhub/taskhub/internal/db/repositories"
	"github.com/taskhub/taskhub/internal/middleware"
	"github.com/taskhub/taskhub/internal/telemetry"
)

// Handlers handles account endpoints
type Handlers struct {
	cfg      *config.Config
	userRepo *repositories.UserRepository
}

// NewHandlers creates a new accounts Handlers instance
func NewHandlers(cfg *config.Config, db *sqlx.DB) *Handlers {
	return &Handlers{
		cfg:      cfg,
		userRepo: repositories.NewUserRepository(db),
	}
}

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	FullName             *string `json:"fullName"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"passwordConfirmation"`
}

// @Summary      Register
// @Description  Create a new account and issue a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  RegisterRequest  true  "Registration payload"
// @Success      201  {object}  map[string]interface{}  "user: models.User, token: string"
// @Failure      400  {object}  map[string]interface{}  "Invalid input or mismatched passwords"
// @Failure      409  {object}  map[string]interface{}  "Email already registered"
// @Router       /api/v1/auth/register [post]
// RegisterHandler creates a new user account
// POST /api/v1/auth/register
func (h *Handlers) RegisterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}
		if req.Password != req.PasswordConfirmation {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		user := &models.User{
			FullName:     req.FullName,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         models.RoleMember,
		}
		if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
			if repositories.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			slog.Error("failed to create user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, h.cfg.Auth.TokenTTL)
		if err != nil {
			slog.Error("failed to issue token", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":  user,
			"token": token,
		})
	}
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Login
// @Description  Verify credentials and issue a bearer token. Unknown email and wrong password return the same error so account existence is not leaked.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "user: models.User, token: string"
// @Failure      401  {object}  map[string]interface{}  "Invalid credentials"
// @Router       /api/v1/auth/login [post]
// LoginHandler authenticates a user
// POST /api/v1/auth/login
func (h *Handlers) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		user, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			slog.Error("failed to look up user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
			telemetry.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, h.cfg.Auth.TokenTTL)
		if err != nil {
			slog.Error("failed to issue token", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		telemetry.LoginAttemptsTotal.WithLabelValues("success").Inc()
		c.JSON(http.StatusOK, gin.H{
			"user":  user,
			"token": token,
		})
	}
}

// @Summary      Current user
// @Description  Returns the identity projection of the authenticated caller.
// @Tags         Auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "id, fullName, email, role"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Router       /api/v1/auth/me [get]
// MeHandler returns the authenticated caller's identity
// GET /api/v1/auth/me
func (h *Handlers) MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
}
