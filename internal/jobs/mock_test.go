package jobs

import (
	"context"
	"testing"
)

func TestMockSearchFiltersByOverlap(t *testing.T) {
	source := MockSource{}

	listings, err := source.Search(context.Background(), SearchQuery{
		Skills: []string{"Python", "Docker", "AWS"},
		Count:  20,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(listings) == 0 {
		t.Fatal("expected matches for common skills")
	}

	for _, job := range listings {
		if job.MatchScore <= minMatchScore {
			t.Fatalf("job %s score %.2f at or below threshold", job.ID, job.MatchScore)
		}
		if job.Source != "Mock API" {
			t.Fatalf("job %s source = %q", job.ID, job.Source)
		}
		if job.ID == "" || job.JobURL == "" {
			t.Fatalf("job missing id or url: %+v", job)
		}
	}

	for i := 1; i < len(listings); i++ {
		if listings[i].MatchScore > listings[i-1].MatchScore {
			t.Fatalf("results not sorted by match score: %v then %v", listings[i-1].MatchScore, listings[i].MatchScore)
		}
	}
}

func TestMockSearchNoOverlap(t *testing.T) {
	source := MockSource{}

	listings, err := source.Search(context.Background(), SearchQuery{
		Skills: []string{"COBOL", "Fortran"},
		Count:  20,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected no matches, got %d", len(listings))
	}
}

func TestMockSearchHonorsCount(t *testing.T) {
	source := MockSource{}

	listings, err := source.Search(context.Background(), SearchQuery{
		Skills: []string{"Python", "Docker", "AWS", "React", "Node.js", "Kubernetes"},
		Count:  2,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(listings) > 2 {
		t.Fatalf("expected at most 2 results, got %d", len(listings))
	}
}

func TestMatchScoreCaseInsensitive(t *testing.T) {
	userSkills := map[string]struct{}{"python": {}, "docker": {}}
	score := matchScore([]string{"Python", "Docker", "AWS", "Linux"}, userSkills)
	if score != 0.5 {
		t.Fatalf("matchScore = %v, want 0.5", score)
	}
}
