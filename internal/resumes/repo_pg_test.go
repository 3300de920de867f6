package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPGRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newPGRepo(t)
	now := time.Now().UTC()
	resume := Resume{
		ID:            "resume-1",
		UserID:        "user-1",
		Filename:      "resume.pdf",
		Data:          []byte("raw"),
		ExtractedText: "text",
		CandidateName: "Alice",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.UserID,
			resume.Filename,
			resume.Data,
			resume.ExtractedText,
			resume.CandidateName,
			nil, // roast_response
			nil, // feedback_response
			resume.CreatedAt,
			resume.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoSaveRoastScopesToOwner(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectExec("UPDATE resumes SET roast_response").
		WithArgs("resume-1", "user-1", "roast text", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveRoast(context.Background(), "user-1", "resume-1", "roast text")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound when no row matches", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("resume-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "user-1", "resume-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	repo, mock := newPGRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "filename", "data", "extracted_text", "candidate_name",
		"roast_response", "feedback_response", "created_at", "updated_at",
	}).
		AddRow("resume-2", "user-1", "b.pdf", []byte("b"), "text b", "Alice", nil, nil, now, now).
		AddRow("resume-1", "user-1", "a.pdf", []byte("a"), "text a", "Alice", "cached roast", nil, now.Add(-time.Hour), now)

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("user-1").
		WillReturnRows(rows)

	out, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(out))
	}
	if out[1].RoastResponse != "cached roast" {
		t.Errorf("roast response = %q", out[1].RoastResponse)
	}
}
