package jobs

import "context"

// SearchQuery describes what a candidate is looking for.
type SearchQuery struct {
	Skills   []string
	Location string
	Count    int
}

// Source fetches job listings from an external provider.
type Source interface {
	Search(ctx context.Context, query SearchQuery) ([]Job, error)
	Name() string
}
