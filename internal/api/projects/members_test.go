package projects

import (
	"net/http"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

var memberWithUserCols = []string{
	"id", "project_id", "user_id", "role", "created_at", "updated_at",
	"user.id", "user.full_name", "user.email",
}

func expectUserByEmail(mock sqlmock.Sqlmock, email string, id int64) {
	name := "Bob Builder"
	mock.ExpectQuery("SELECT.*FROM users.*WHERE email").
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id, name, email, "hash", "member", time.Now(), time.Now()))
}

func TestListMembers(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)

	name := "Bob Builder"
	mock.ExpectQuery("SELECT.*FROM project_members pm.*INNER JOIN users u").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(memberWithUserCols).
			AddRow(int64(1), int64(1), int64(2), "member", time.Now(), time.Now(),
				int64(2), name, "bob@example.com"))

	w := doJSON(t, r, http.MethodGet, "/projects/1/members", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	members := body["members"].([]any)
	if len(members) != 1 {
		t.Fatalf("members = %v, want 1 entry", members)
	}
	user := members[0].(map[string]any)["user"].(map[string]any)
	if user["email"] != "bob@example.com" || user["fullName"] != "Bob Builder" {
		t.Errorf("nested user = %v", user)
	}
}

func TestAddMember_MissingEmail(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)

	w := doJSON(t, r, http.MethodPost, "/projects/1/members", gin.H{"role": "lead"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing email", w.Code)
	}
}

func TestAddMember_UnknownEmail(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	mock.ExpectQuery("SELECT.*FROM users.*WHERE email").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	w := doJSON(t, r, http.MethodPost, "/projects/1/members", gin.H{"email": "ghost@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown email", w.Code)
	}
}

func TestAddMember_AlreadyMember(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	expectUserByEmail(mock, "bob@example.com", 2)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE project_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(memberCols).
			AddRow(int64(5), int64(1), int64(2), "member", time.Now(), time.Now()))

	w := doJSON(t, r, http.MethodPost, "/projects/1/members", gin.H{"email": "bob@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for duplicate member", w.Code)
	}
}

func TestAddMember_Success(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	expectUserByEmail(mock, "bob@example.com", 2)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE project_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(memberCols))
	mock.ExpectQuery("INSERT INTO project_members").
		WithArgs(int64(1), int64(2), "member").
		WillReturnRows(sqlmock.NewRows(insertReturnCols).AddRow(int64(5), time.Now(), time.Now()))

	// A bogus role is stored as member, not rejected.
	w := doJSON(t, r, http.MethodPost, "/projects/1/members", gin.H{"email": "bob@example.com", "role": "boss"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	member := body["member"].(map[string]any)
	if member["role"] != "member" {
		t.Errorf("role = %v, want member", member["role"])
	}
	user := member["user"].(map[string]any)
	if user["id"].(float64) != 2 {
		t.Errorf("nested user id = %v, want 2", user["id"])
	}
}

func TestAddMember_LeadRole(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	expectUserByEmail(mock, "bob@example.com", 2)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE project_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(memberCols))
	mock.ExpectQuery("INSERT INTO project_members").
		WithArgs(int64(1), int64(2), "lead").
		WillReturnRows(sqlmock.NewRows(insertReturnCols).AddRow(int64(5), time.Now(), time.Now()))

	w := doJSON(t, r, http.MethodPost, "/projects/1/members", gin.H{"email": "bob@example.com", "role": "lead"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}
}

func TestAddMember_RaceOnUniqueConstraint(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	expectUserByEmail(mock, "bob@example.com", 2)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE project_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(memberCols))
	mock.ExpectQuery("INSERT INTO project_members").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "project_members_project_id_user_id_key"})

	w := doJSON(t, r, http.MethodPost, "/projects/1/members", gin.H{"email": "bob@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 when the constraint wins the race", w.Code)
	}
}

func TestRemoveMember(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE id = \\$1 AND project_id = \\$2").
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows(memberCols).
			AddRow(int64(5), int64(1), int64(2), "member", time.Now(), time.Now()))
	mock.ExpectExec("DELETE FROM project_members").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(t, r, http.MethodDelete, "/projects/1/members/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] == "" {
		t.Error("expected a message on remove")
	}
}

func TestRemoveMember_WrongProject(t *testing.T) {
	r, mock := newProjectsRouter(t)
	expectOwnedProject(mock, 1, 7)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE id = \\$1 AND project_id = \\$2").
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows(memberCols))

	w := doJSON(t, r, http.MethodDelete, "/projects/1/members/5", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for member of another project", w.Code)
	}
}
