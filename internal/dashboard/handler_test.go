package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hareesh3232/Mock-test-interview/internal/interviews"
	"github.com/hareesh3232/Mock-test-interview/internal/jobs"
	"github.com/hareesh3232/Mock-test-interview/internal/resumes"
	sharedauth "github.com/hareesh3232/Mock-test-interview/internal/shared/auth"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/middleware"
)

func setupDashboardRouter(t *testing.T) (*gin.Engine, *resumes.MemoryRepo, *interviews.MemoryRepo, *jobs.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeRepo := resumes.NewMemoryRepo()
	interviewRepo := interviews.NewMemoryRepo()
	jobRepo := jobs.NewMemoryRepo()
	svc := &Service{Resumes: resumeRepo, Interviews: interviewRepo, Jobs: jobRepo}

	router := gin.New()
	router.Use(middleware.Auth("dev"))
	NewHandler(svc).RegisterRoutes(router.Group("/api/dashboard"))
	return router, resumeRepo, interviewRepo, jobRepo
}

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := sharedauth.SignJWT(sharedauth.Claims{Sub: userID})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doGet(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedDashboardData(t *testing.T, resumeRepo *resumes.MemoryRepo, interviewRepo *interviews.MemoryRepo, jobRepo *jobs.MemoryRepo, userID string) {
	t.Helper()
	ctx := context.Background()

	parsed := resumes.Resume{
		ID:         "resume-1",
		UserID:     userID,
		FileName:   "resume.pdf",
		Status:     resumes.StatusParsed,
		Skills:     []string{"Go", "PostgreSQL", "Docker"},
		UploadedAt: time.Now().UTC(),
	}
	queued := resumes.Resume{
		ID:         "resume-2",
		UserID:     userID,
		FileName:   "draft.docx",
		Status:     resumes.StatusQueued,
		Skills:     []string{"should-not-count"},
		UploadedAt: time.Now().UTC(),
	}
	secondParsed := resumes.Resume{
		ID:         "resume-3",
		UserID:     userID,
		FileName:   "old.pdf",
		Status:     resumes.StatusParsed,
		Skills:     []string{"Go", "Kubernetes"},
		UploadedAt: time.Now().UTC(),
	}
	for _, r := range []resumes.Resume{parsed, queued, secondParsed} {
		if err := resumeRepo.Create(ctx, r); err != nil {
			t.Fatalf("seed resume: %v", err)
		}
	}

	if err := jobRepo.Upsert(ctx, jobs.Job{ID: "job-1", Title: "Backend Engineer", Company: "Acme"}); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	older := time.Now().UTC().Add(-48 * time.Hour)
	newer := time.Now().UTC().Add(-1 * time.Hour)
	completedOld := interviews.Interview{
		ID:                 "iv-old",
		UserID:             userID,
		ResumeID:           "resume-1",
		JobID:              "job-1",
		Status:             interviews.StatusCompleted,
		TechnicalScore:     6,
		CommunicationScore: 6,
		OverallScore:       6,
		StartedAt:          older.Add(-time.Hour),
		CompletedAt:        &older,
	}
	completedNew := interviews.Interview{
		ID:                 "iv-new",
		UserID:             userID,
		ResumeID:           "resume-1",
		JobID:              "job-1",
		Status:             interviews.StatusCompleted,
		TechnicalScore:     8,
		CommunicationScore: 8,
		OverallScore:       8,
		StartedAt:          newer.Add(-time.Hour),
		CompletedAt:        &newer,
	}
	running := interviews.Interview{
		ID:        "iv-running",
		UserID:    userID,
		ResumeID:  "resume-1",
		JobID:     "job-1",
		Status:    interviews.StatusInProgress,
		StartedAt: time.Now().UTC(),
	}
	for _, iv := range []interviews.Interview{completedOld, completedNew, running} {
		if err := interviewRepo.Create(ctx, iv); err != nil {
			t.Fatalf("seed interview: %v", err)
		}
	}
}

func TestDashboardStats(t *testing.T) {
	router, resumeRepo, interviewRepo, jobRepo := setupDashboardRouter(t)
	const userID = "user-1"
	seedDashboardData(t, resumeRepo, interviewRepo, jobRepo, userID)
	token := signTestToken(t, userID)

	w := doGet(t, router, "/api/dashboard/stats", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var stats Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalResumes != 3 || stats.TotalInterviews != 3 || stats.CompletedInterviews != 2 {
		t.Fatalf("totals = %+v", stats)
	}
	if stats.AverageScores.Overall != 7 {
		t.Fatalf("average overall = %v, want 7", stats.AverageScores.Overall)
	}
	if len(stats.TopSkills) == 0 || stats.TopSkills[0] != "Go" {
		t.Fatalf("top skills = %v", stats.TopSkills)
	}
	for _, skill := range stats.TopSkills {
		if skill == "should-not-count" {
			t.Fatal("unparsed resume skills must not count")
		}
	}
}

func TestDashboardHistory(t *testing.T) {
	router, resumeRepo, interviewRepo, jobRepo := setupDashboardRouter(t)
	const userID = "user-1"
	seedDashboardData(t, resumeRepo, interviewRepo, jobRepo, userID)
	token := signTestToken(t, userID)

	w := doGet(t, router, "/api/dashboard/history", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		History []HistoryEntry `json:"history"`
		Total   int            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 completed interviews, got %d", resp.Total)
	}
	if resp.History[0].InterviewID != "iv-new" {
		t.Fatalf("expected most recent first, got %q", resp.History[0].InterviewID)
	}
	if resp.History[0].JobTitle != "Backend Engineer" || resp.History[0].Company != "Acme" {
		t.Fatalf("job fields = %+v", resp.History[0])
	}
}

func TestDashboardHistoryLimit(t *testing.T) {
	router, resumeRepo, interviewRepo, jobRepo := setupDashboardRouter(t)
	const userID = "user-1"
	seedDashboardData(t, resumeRepo, interviewRepo, jobRepo, userID)
	token := signTestToken(t, userID)

	w := doGet(t, router, "/api/dashboard/history?limit=1", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		History []HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(resp.History) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp.History))
	}

	w = doGet(t, router, "/api/dashboard/history?limit=bogus", token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
}

func TestDashboardRejectsGuests(t *testing.T) {
	router, _, _, _ := setupDashboardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	req.Header.Set("X-Guest-Id", "visitor")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest, got %d", w.Code)
	}
}
