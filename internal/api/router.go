// Package api wires together all HTTP routes for the TaskHub backend.
//
// Route grouping:
//   - /health, /ready, /version are unauthenticated operational endpoints.
//   - /api/v1/auth/register and /api/v1/auth/login are public but sit behind
//     a strict rate-limit bucket to slow credential stuffing.
//   - Everything else under /api/v1 requires a bearer token; the auth
//     middleware loads the user once and handlers read it from the context.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/api/accounts"
	"github.com/taskhub/taskhub/internal/api/projects"
	"github.com/taskhub/taskhub/internal/config"
	"github.com/taskhub/taskhub/internal/db/repositories"
	"github.com/taskhub/taskhub/internal/middleware"
)

// Version is the reported API version
const Version = "0.1.0"

// BackgroundServices holds resources that must be stopped during graceful
// shutdown. The caller (cmd/server) invokes Shutdown() after the HTTP server
// has drained in-flight requests.
type BackgroundServices struct {
	rateLimiters []*middleware.RateLimiter
}

// Shutdown stops all background goroutines.
func (bg *BackgroundServices) Shutdown() {
	slog.Info("stopping background services")
	for _, rl := range bg.rateLimiters {
		rl.Stop()
	}
	slog.Info("all background services stopped")
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *sqlx.DB) (*gin.Engine, *BackgroundServices) {
	router := gin.New()

	userRepo := repositories.NewUserRepository(db)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(LoggerMiddleware(cfg))
	router.Use(CORSMiddleware(cfg))
	router.Use(middleware.SecurityHeadersMiddleware(middleware.APISecurityHeadersConfig()))

	router.GET("/health", healthCheckHandler(db))
	router.GET("/ready", readinessHandler(db))
	router.GET("/version", versionHandler())

	accountHandlers := accounts.NewHandlers(cfg, db)
	projectHandlers := projects.NewHandlers(db)

	authRateLimiter := middleware.NewRateLimiter(middleware.AuthRateLimitConfig())
	generalRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	apiV1 := router.Group("/api/v1")
	{
		// Public authentication endpoints (no auth required, strictly rate limited)
		authGroup := apiV1.Group("/auth")
		authGroup.Use(middleware.RateLimitMiddleware(authRateLimiter))
		{
			authGroup.POST("/register", accountHandlers.RegisterHandler())
			authGroup.POST("/login", accountHandlers.LoginHandler())
		}

		// Authenticated endpoints
		authenticatedGroup := apiV1.Group("")
		authenticatedGroup.Use(middleware.AuthMiddleware(userRepo))
		authenticatedGroup.Use(middleware.RateLimitMiddleware(generalRateLimiter))
		{
			authenticatedGroup.GET("/auth/me", accountHandlers.MeHandler())

			projectsGroup := authenticatedGroup.Group("/projects")
			{
				projectsGroup.GET("", projectHandlers.ListHandler())
				projectsGroup.POST("", projectHandlers.CreateHandler())
				projectsGroup.GET("/:id", projectHandlers.ShowHandler())
				projectsGroup.PUT("/:id", projectHandlers.UpdateHandler())
				projectsGroup.DELETE("/:id", projectHandlers.DeleteHandler())

				// Nested task and member routes reuse the :id wildcard; Gin
				// rejects differently named wildcards at the same position.
				projectsGroup.GET("/:id/tasks", projectHandlers.ListTasksHandler())
				projectsGroup.POST("/:id/tasks", projectHandlers.CreateTaskHandler())
				projectsGroup.GET("/:id/members", projectHandlers.ListMembersHandler())
				projectsGroup.POST("/:id/members", projectHandlers.AddMemberHandler())
				projectsGroup.DELETE("/:id/members/:memberId", projectHandlers.RemoveMemberHandler())
			}
		}
	}

	bg := &BackgroundServices{
		rateLimiters: []*middleware.RateLimiter{authRateLimiter, generalRateLimiter},
	}

	return router, bg
}

// @Summary      Health check
// @Description  Returns the health status of the service, including database connectivity.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status: healthy, time: RFC3339 timestamp"
// @Failure      503  {object}  map[string]interface{}  "status: unhealthy, error: database connection failed"
// @Router       /health [get]
// healthCheckHandler returns the health status of the service
func healthCheckHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary      Readiness check
// @Description  Returns whether the service is ready to accept traffic.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "ready: true, time: RFC3339 timestamp"
// @Failure      503  {object}  map[string]interface{}  "ready: false, error: database not ready"
// @Router       /ready [get]
// readinessHandler returns the readiness status of the service
func readinessHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{}

		if err := db.PingContext(c.Request.Context()); err != nil {
			checks["database"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": checks,
				"error":  "database not ready",
			})
			return
		}
		checks["database"] = "healthy"

		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary      API version
// @Description  Returns the current service and API version.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "version, api_version"
// @Router       /version [get]
// versionHandler returns the API version
func versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     Version,
			"api_version": "v1",
		})
	}
}

// LoggerMiddleware provides structured request logging via slog
func LoggerMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		requestID := c.GetString(middleware.RequestIDKey)
		slog.LogAttrs(
			c.Request.Context(),
			slog.LevelInfo,
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.Int("status", c.Writer.Status()),
			slog.Int("size", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
			slog.String("request_id", requestID),
			slog.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// CORSMiddleware handles CORS using the allowed origins from config
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.Security.CORS.AllowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			if origin == "" {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
			}
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
