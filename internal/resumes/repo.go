package resumes

import (
	"context"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	// Get loads a resume without ownership scoping, for background workers.
	Get(ctx context.Context, resumeID string) (Resume, error)
	// GetByUser loads a resume scoped to its owner.
	GetByUser(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	Delete(ctx context.Context, userID, resumeID string) error
	UpdateStatus(ctx context.Context, resumeID, status string, errorCode, errorMessage *string) error
	UpdateParsed(ctx context.Context, resumeID string, parsed llm.ParsedResume, parsedAt time.Time) error
}
