package projects

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/taskhub/taskhub/internal/db/models"
)

var projectCols = []string{
	"id", "name", "description", "status", "visibility", "owner_id",
	"organization_id", "start_date", "end_date", "created_at", "updated_at",
}
var taskCols = []string{
	"id", "project_id", "title", "description", "status", "priority",
	"due_date", "assignee_id", "created_at", "updated_at",
}
var memberCols = []string{"id", "project_id", "user_id", "role", "created_at", "updated_at"}
var userCols = []string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}
var insertReturnCols = []string{"id", "created_at", "updated_at"}
var orgMemberCols = []string{"id", "organization_id", "user_id", "role", "created_at", "updated_at"}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("TH_JWT_SECRET", "test-jwt-secret-that-is-at-least-32-chars")
	os.Exit(m.Run())
}

// newProjectsRouter builds a router with the project routes registered the
// same way the real router does, with a stub auth layer injecting user 7.
func newProjectsRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := NewHandlers(sqlx.NewDb(db, "sqlmock"))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		name := "Alice Example"
		c.Set("user", &models.User{ID: 7, FullName: &name, Email: "alice@example.com", Role: models.RoleMember})
		c.Set("user_id", int64(7))
		c.Next()
	})
	g := r.Group("/projects")
	{
		g.GET("", h.ListHandler())
		g.POST("", h.CreateHandler())
		g.GET("/:id", h.ShowHandler())
		g.PUT("/:id", h.UpdateHandler())
		g.DELETE("/:id", h.DeleteHandler())
		g.GET("/:id/tasks", h.ListTasksHandler())
		g.POST("/:id/tasks", h.CreateTaskHandler())
		g.GET("/:id/members", h.ListMembersHandler())
		g.POST("/:id/members", h.AddMemberHandler())
		g.DELETE("/:id/members/:memberId", h.RemoveMemberHandler())
	}
	return r, mock
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// expectOwnedProject queues the owner-scoped project lookup used by every
// single-project route.
func expectOwnedProject(mock sqlmock.Sqlmock, id, ownerID int64) {
	mock.ExpectQuery("SELECT.*FROM projects.*WHERE id = \\$1 AND owner_id = \\$2").
		WithArgs(id, ownerID).
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow(id, "Apollo", nil, "active", "private", ownerID, nil, nil, nil, time.Now(), time.Now()))
}

// expectProjectNotOwned queues an empty result for the scoped lookup.
func expectProjectNotOwned(mock sqlmock.Sqlmock, id, ownerID int64) {
	mock.ExpectQuery("SELECT.*FROM projects.*WHERE id = \\$1 AND owner_id = \\$2").
		WithArgs(id, ownerID).
		WillReturnRows(sqlmock.NewRows(projectCols))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; body: %s", err, w.Body.String())
	}
	return body
}

