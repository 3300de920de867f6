package resumes

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvtoaster-backend/internal/extract"
	"cvtoaster-backend/internal/textproc"
)

// TextExtractor parses a document of the given extension into plain text.
type TextExtractor func(ctx context.Context, data []byte, ext string) (string, error)

// Service contains business logic for resumes. Uploaded files are parsed and
// preprocessed once at write time; the stored text is what every later
// generation feature reads.
type Service struct {
	Repo    Repo
	Extract TextExtractor
}

// Upload validates and stores a new resume.
func (s *Service) Upload(ctx context.Context, userID, candidateName, filename string, data []byte) (Resume, error) {
	text, err := s.prepare(ctx, candidateName, filename, data)
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		Filename:      filename,
		Data:          data,
		ExtractedText: text,
		CandidateName: strings.TrimSpace(candidateName),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get returns a resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Replace overwrites an existing resume's file and candidate name. The
// extracted text is rebuilt from the new file; cached roast and feedback
// responses are left untouched.
func (s *Service) Replace(ctx context.Context, userID, resumeID, candidateName, filename string, data []byte) (Resume, error) {
	text, err := s.prepare(ctx, candidateName, filename, data)
	if err != nil {
		return Resume{}, err
	}

	resume := Resume{
		ID:            resumeID,
		UserID:        userID,
		Filename:      filename,
		Data:          data,
		ExtractedText: text,
		CandidateName: strings.TrimSpace(candidateName),
	}
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Delete removes a resume owned by the user.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Delete(ctx, userID, resumeID)
}

// SaveRoast persists a roast response verbatim on the resume.
func (s *Service) SaveRoast(ctx context.Context, userID, resumeID, response string) error {
	return s.Repo.SaveRoast(ctx, userID, resumeID, response)
}

// SaveFeedback persists a feedback response verbatim on the resume.
func (s *Service) SaveFeedback(ctx context.Context, userID, resumeID, response string) error {
	return s.Repo.SaveFeedback(ctx, userID, resumeID, response)
}

func (s *Service) prepare(ctx context.Context, candidateName, filename string, data []byte) (string, error) {
	if strings.TrimSpace(candidateName) == "" {
		return "", ErrMissingName
	}
	if len(data) == 0 {
		return "", ErrMissingFile
	}
	ext := extract.ExtFromFilename(filename)
	if !extract.Allowed(ext) {
		return "", ErrUnsupportedType
	}

	extractor := s.Extract
	if extractor == nil {
		extractor = extract.Text
	}
	raw, err := extractor(ctx, data, ext)
	if err != nil {
		return "", err
	}
	// A document with no text layer (a scanned PDF, say) still stores fine;
	// generation reports the empty document when it is actually asked for.
	return textproc.Preprocess(raw), nil
}
