package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, filename, data, extracted_text, candidate_name,
       roast_response, feedback_response, created_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, filename, data, extracted_text, candidate_name,
                     roast_response, feedback_response, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Filename,
		resume.Data,
		resume.ExtractedText,
		resume.CandidateName,
		nullIfEmpty(resume.RoastResponse),
		nullIfEmpty(resume.FeedbackResponse),
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

// GetByID returns a resume owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
}

// ListByUser returns the user's resumes, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of an existing resume.
func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes
SET filename = $3, data = $4, extracted_text = $5, candidate_name = $6, updated_at = $7
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Filename,
		resume.Data,
		resume.ExtractedText,
		resume.CandidateName,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a resume owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, resumeID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SaveRoast stores a roast response on the resume.
func (r *PGRepo) SaveRoast(ctx context.Context, userID, resumeID, response string) error {
	return r.saveResponse(ctx, "roast_response", userID, resumeID, response)
}

// SaveFeedback stores a feedback response on the resume.
func (r *PGRepo) SaveFeedback(ctx context.Context, userID, resumeID, response string) error {
	return r.saveResponse(ctx, "feedback_response", userID, resumeID, response)
}

func (r *PGRepo) saveResponse(ctx context.Context, column, userID, resumeID, response string) error {
	query := `UPDATE resumes SET ` + column + ` = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID, response, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var roast, feedback sql.NullString
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Filename,
		&resume.Data,
		&resume.ExtractedText,
		&resume.CandidateName,
		&roast,
		&feedback,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	if err != nil {
		return Resume{}, err
	}
	resume.RoastResponse = roast.String
	resume.FeedbackResponse = feedback.String
	return resume, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
