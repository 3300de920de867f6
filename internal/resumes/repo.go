package resumes

import "context"

// Repo defines persistence operations for resumes. All operations are scoped
// to the owning user; a resume owned by another user behaves as if it does
// not exist.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, userID, resumeID string) error
	SaveRoast(ctx context.Context, userID, resumeID, response string) error
	SaveFeedback(ctx context.Context, userID, resumeID, response string) error
}
