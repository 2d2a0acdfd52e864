package repositories

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/taskhub/taskhub/internal/db/models"
)

var memberCols = []string{"id", "project_id", "user_id", "role", "created_at", "updated_at"}
var memberWithUserCols = []string{
	"id", "project_id", "user_id", "role", "created_at", "updated_at",
	"user.id", "user.full_name", "user.email",
}

func newMemberRepo(t *testing.T) (*ProjectMemberRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewProjectMemberRepository(db), mock
}

func TestMemberListWithUsers(t *testing.T) {
	repo, mock := newMemberRepo(t)
	name := "Bob Builder"
	rows := sqlmock.NewRows(memberWithUserCols).
		AddRow(int64(1), int64(3), int64(2), "member", time.Now(), time.Now(),
			int64(2), name, "bob@example.com")
	mock.ExpectQuery("SELECT.*FROM project_members pm.*INNER JOIN users u").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	members, err := repo.ListWithUsers(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("len = %d, want 1", len(members))
	}
	m := members[0]
	if m.User.ID != 2 || m.User.Email != "bob@example.com" {
		t.Errorf("nested user not populated: %+v", m.User)
	}
	if m.User.FullName == nil || *m.User.FullName != "Bob Builder" {
		t.Errorf("FullName not populated: %+v", m.User.FullName)
	}
}

func TestMemberGet_NotFound(t *testing.T) {
	repo, mock := newMemberRepo(t)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE project_id").
		WithArgs(int64(3), int64(9)).
		WillReturnRows(sqlmock.NewRows(memberCols))

	member, err := repo.Get(context.Background(), 3, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member != nil {
		t.Errorf("expected nil, got %+v", member)
	}
}

func TestMemberGetByID_ScopedToProject(t *testing.T) {
	repo, mock := newMemberRepo(t)
	mock.ExpectQuery("SELECT.*FROM project_members.*WHERE id = \\$1 AND project_id = \\$2").
		WithArgs(int64(5), int64(3)).
		WillReturnRows(sqlmock.NewRows(memberCols).
			AddRow(int64(5), int64(3), int64(2), "lead", time.Now(), time.Now()))

	member, err := repo.GetByID(context.Background(), 5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member == nil || member.Role != models.ProjectRoleLead {
		t.Fatalf("expected lead member, got %+v", member)
	}
}

func TestMemberCreate_Duplicate(t *testing.T) {
	repo, mock := newMemberRepo(t)
	mock.ExpectQuery("INSERT INTO project_members").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "project_members_project_id_user_id_key"})

	member := &models.ProjectMember{ProjectID: 3, UserID: 2, Role: models.ProjectRoleMember}
	err := repo.Create(context.Background(), member)
	if err == nil {
		t.Fatal("expected error for duplicate membership")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestMemberDelete(t *testing.T) {
	repo, mock := newMemberRepo(t)
	mock.ExpectExec("DELETE FROM project_members").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
