package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/hareesh3232/Mock-test-interview/internal/shared/telemetry"
)

// Service contains business logic for job search and lookup.
type Service struct {
	Repo Repo
	// Primary is the external provider; Fallback serves results when the
	// provider is unconfigured or failing.
	Primary  Source
	Fallback Source
}

// NewService builds a job service. primary may be nil.
func NewService(repo Repo, primary Source) *Service {
	return &Service{Repo: repo, Primary: primary, Fallback: MockSource{}}
}

// Search queries the configured source and caches the results for later lookup.
func (s *Service) Search(ctx context.Context, query SearchQuery) ([]Job, error) {
	if len(query.Skills) == 0 {
		return nil, errors.New("at least one skill is required")
	}
	skills := make([]string, 0, len(query.Skills))
	for _, skill := range query.Skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	query.Skills = skills
	if query.Count <= 0 {
		query.Count = 20
	}

	listings, err := s.searchSource(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, job := range listings {
		if upsertErr := s.Repo.Upsert(ctx, job); upsertErr != nil {
			telemetry.Error("job cache upsert failed", map[string]any{
				"job_id": job.ID,
				"error":  upsertErr.Error(),
			})
		}
	}
	return listings, nil
}

func (s *Service) searchSource(ctx context.Context, query SearchQuery) ([]Job, error) {
	if s.Primary != nil {
		listings, err := s.Primary.Search(ctx, query)
		if err == nil {
			return listings, nil
		}
		telemetry.Error("job source failed, using fallback", map[string]any{
			"source": s.Primary.Name(),
			"error":  err.Error(),
		})
	}
	return s.Fallback.Search(ctx, query)
}

// Get returns a previously searched job.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return Job{}, errors.New("job id is required")
	}
	return s.Repo.GetByID(ctx, jobID)
}
