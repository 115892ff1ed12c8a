package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAdzuna(t *testing.T, handler http.HandlerFunc) *AdzunaSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	source, err := NewAdzunaSource("app-id", "app-key")
	if err != nil {
		t.Fatalf("NewAdzunaSource: %v", err)
	}
	source.baseURL = server.URL
	return source
}

func TestAdzunaSearchMapsResults(t *testing.T) {
	source := newTestAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("app_id") != "app-id" {
			t.Errorf("missing app_id, query = %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("what") != "Go PostgreSQL" {
			t.Errorf("what = %q", r.URL.Query().Get("what"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{
			"id": "12345",
			"title": "Senior Backend Engineer",
			"company": {"display_name": "Acme Ltd"},
			"location": {"display_name": "London, UK"},
			"description": "Remote role. 5+ years experience with Python, Docker and PostgreSQL. Knowledge of Kubernetes a plus.",
			"salary_min": 70000,
			"salary_max": 95000,
			"redirect_url": "https://adzuna.example/view/12345",
			"created": "2026-08-01T09:30:00Z"
		}]}`))
	})

	listings, err := source.Search(context.Background(), SearchQuery{
		Skills:   []string{"Go", "PostgreSQL"},
		Location: "London",
		Count:    10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 job, got %d", len(listings))
	}

	job := listings[0]
	if job.ID != "adzuna-12345" {
		t.Fatalf("id = %q", job.ID)
	}
	if job.Company != "Acme Ltd" || job.Location != "London, UK" {
		t.Fatalf("company/location = %q/%q", job.Company, job.Location)
	}
	if job.ExperienceLevel != "Senior" {
		t.Fatalf("experienceLevel = %q", job.ExperienceLevel)
	}
	if !job.RemoteWork {
		t.Fatal("expected remoteWork true for remote description")
	}
	if len(job.Requirements) == 0 {
		t.Fatal("expected extracted requirements")
	}
	if len(job.SkillsRequired) == 0 {
		t.Fatal("expected extracted skills")
	}
	if job.PostedDate.Year() != 2026 {
		t.Fatalf("postedDate = %v", job.PostedDate)
	}
	if job.SalaryCurrency != "USD" || job.JobType != "Full-time" {
		t.Fatalf("defaults not applied: %q %q", job.SalaryCurrency, job.JobType)
	}
}

func TestAdzunaSearchSurfacesAPIError(t *testing.T) {
	source := newTestAdzuna(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	if _, err := source.Search(context.Background(), SearchQuery{Skills: []string{"Go"}}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestNewAdzunaSourceValidation(t *testing.T) {
	if _, err := NewAdzunaSource("", "key"); err == nil {
		t.Fatal("expected error for missing app id")
	}
	if _, err := NewAdzunaSource("id", ""); err == nil {
		t.Fatal("expected error for missing app key")
	}
}

func TestExperienceLevelFromTitle(t *testing.T) {
	cases := map[string]string{
		"Senior Software Engineer":    "Senior",
		"Lead Developer":              "Senior",
		"Junior Frontend Developer":   "Junior",
		"Software Engineering Intern": "Junior",
		"Software Engineer":           "Mid",
	}
	for title, want := range cases {
		if got := experienceLevelFromTitle(title); got != want {
			t.Fatalf("experienceLevelFromTitle(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestExtractRequirementsCapsAtFive(t *testing.T) {
	description := "5+ years experience. Bachelor degree required. Master preferred. " +
		"Strong communication skills. Experience with Go. Knowledge of Kafka. Strong ownership."
	requirements := extractRequirements(description)
	if len(requirements) != 5 {
		t.Fatalf("expected 5 requirements, got %d: %v", len(requirements), requirements)
	}
}
