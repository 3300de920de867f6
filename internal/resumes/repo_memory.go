package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

// Create stores the resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = resume
	return nil
}

// GetByID returns a resume owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// ListByUser returns the user's resumes, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0)
	for _, resume := range r.byID {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update replaces an existing resume owned by the same user.
func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[resume.ID]
	if !ok || current.UserID != resume.UserID {
		return ErrNotFound
	}
	resume.CreatedAt = current.CreatedAt
	resume.UpdatedAt = time.Now().UTC()
	r.byID[resume.ID] = resume
	return nil
}

// Delete removes a resume owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, resumeID)
	return nil
}

// SaveRoast stores a roast response on the resume.
func (r *MemoryRepo) SaveRoast(ctx context.Context, userID, resumeID, response string) error {
	return r.saveResponse(ctx, userID, resumeID, func(resume *Resume) {
		resume.RoastResponse = response
	})
}

// SaveFeedback stores a feedback response on the resume.
func (r *MemoryRepo) SaveFeedback(ctx context.Context, userID, resumeID, response string) error {
	return r.saveResponse(ctx, userID, resumeID, func(resume *Resume) {
		resume.FeedbackResponse = response
	})
}

func (r *MemoryRepo) saveResponse(ctx context.Context, userID, resumeID string, apply func(*Resume)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[resumeID]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	apply(&resume)
	resume.UpdatedAt = time.Now().UTC()
	r.byID[resumeID] = resume
	return nil
}
