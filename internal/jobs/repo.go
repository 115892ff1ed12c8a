package jobs

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job not found")

// Repo caches job listings so interviews can reference them later.
type Repo interface {
	Upsert(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
}
