package resumes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now().UTC()
	}
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID, resumeID string) (Resume, error) {
	resume, err := r.Get(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]Resume, 0)
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			owned = append(owned, resume)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].UploadedAt.After(owned[j].UploadedAt)
	})

	if offset >= len(owned) {
		return []Resume{}, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[resumeID]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	delete(r.resumes, resumeID)
	return nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, resumeID, status string, errorCode, errorMessage *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return ErrNotFound
	}
	resume.Status = status
	if errorCode != nil {
		resume.ErrorCode = *errorCode
	}
	if errorMessage != nil {
		resume.ErrorMessage = *errorMessage
	}
	r.resumes[resumeID] = resume
	return nil
}

func (r *MemoryRepo) UpdateParsed(ctx context.Context, resumeID string, parsed llm.ParsedResume, parsedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return ErrNotFound
	}
	copied := parsed
	resume.Status = StatusParsed
	resume.Parsed = &copied
	resume.Skills = parsed.Skills
	resume.ExperienceYears = parsed.ExperienceYears
	resume.EducationLevel = parsed.EducationLevel
	resume.ErrorCode = ""
	resume.ErrorMessage = ""
	resume.ParsedAt = &parsedAt
	r.resumes[resumeID] = resume
	return nil
}
