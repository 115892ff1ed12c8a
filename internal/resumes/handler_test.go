package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/queue"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/middleware"
	local "github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object/local"
)

type stubLLM struct {
	mu       sync.Mutex
	parsed   llm.ParsedResume
	parseErr error
	calls    int
}

func (s *stubLLM) ParseResume(ctx context.Context, resumeText string) (llm.ParsedResume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.parseErr != nil {
		return llm.ParsedResume{}, s.parseErr
	}
	return s.parsed, nil
}

func (s *stubLLM) GenerateQuestions(ctx context.Context, input llm.QuestionInput) ([]llm.Question, error) {
	return nil, llm.ErrNotImplemented
}

func (s *stubLLM) EvaluateAnswer(ctx context.Context, input llm.AnswerInput) (llm.Evaluation, error) {
	return llm.Evaluation{}, llm.ErrNotImplemented
}

func (s *stubLLM) FinalFeedback(ctx context.Context, performance []llm.QuestionPerformance) (llm.Feedback, error) {
	return llm.Feedback{}, llm.ErrNotImplemented
}

type stubQueue struct {
	mu       sync.Mutex
	messages []queue.Message
	err      error
}

func (s *stubQueue) Send(ctx context.Context, msg queue.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func setupResumeRouter(t *testing.T, llmStub *stubLLM, queueStub queue.Client) (*gin.Engine, *MemoryRepo, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	store := local.New(t.TempDir())
	svc := &Service{Repo: repo, Store: store, LLM: llmStub, Queue: queueStub}
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(middleware.Auth("dev"))
	handler.RegisterRoutes(router.Group("/api/resume"))
	return router, repo, svc
}

func multipartUpload(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func waitForStatus(t *testing.T, repo *MemoryRepo, resumeID string, statuses ...string) Resume {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resume, err := repo.Get(context.Background(), resumeID)
		if err == nil {
			for _, status := range statuses {
				if resume.Status == status {
					return resume
				}
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	resume, _ := repo.Get(context.Background(), resumeID)
	t.Fatalf("resume %s never reached %v, status=%q", resumeID, statuses, resume.Status)
	return Resume{}
}

func TestUploadQueuesParsing(t *testing.T) {
	llmStub := &stubLLM{parsed: llm.ParsedResume{
		Skills:          []string{"go", "postgresql"},
		ExperienceYears: 5,
		EducationLevel:  "Bachelor's",
		Summary:         "Backend engineer",
	}}
	router, repo, _ := setupResumeRouter(t, llmStub, nil)

	body, contentType := multipartUpload(t, "resume.docx", []byte("not a real docx"))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.Code, resp.Body.String())
	}

	var created ResumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ResumeID == "" {
		t.Fatal("expected resumeId")
	}
	if created.Status != StatusQueued {
		t.Fatalf("expected status queued, got %q", created.Status)
	}

	// The async parse fails on extraction (the payload is not a real docx)
	// but must always land in a terminal state.
	resume := waitForStatus(t, repo, created.ResumeID, StatusParsed, StatusFailed)
	if resume.Status == StatusFailed && resume.ErrorCode == "" {
		t.Fatal("failed parse must carry an error code")
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	router, _, _ := setupResumeRouter(t, &stubLLM{}, nil)

	body, contentType := multipartUpload(t, "resume.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestUploadDispatchesToQueue(t *testing.T) {
	queueStub := &stubQueue{}
	router, repo, _ := setupResumeRouter(t, &stubLLM{}, queueStub)

	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.Code, resp.Body.String())
	}

	queueStub.mu.Lock()
	defer queueStub.mu.Unlock()
	if len(queueStub.messages) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(queueStub.messages))
	}
	msg := queueStub.messages[0]
	if msg.ResumeID == "" || msg.Version != 1 {
		t.Fatalf("unexpected message: %+v", msg)
	}

	resume, err := repo.Get(context.Background(), msg.ResumeID)
	if err != nil {
		t.Fatalf("get resume: %v", err)
	}
	if resume.Status != StatusQueued {
		t.Fatalf("queued dispatch must not process inline, status=%q", resume.Status)
	}
}

func TestGetHidesOtherUsersResumes(t *testing.T) {
	router, repo, _ := setupResumeRouter(t, &stubLLM{}, nil)

	seeded := Resume{
		ID:         "resume-1",
		UserID:     "guest:owner",
		FileName:   "resume.pdf",
		Status:     StatusParsed,
		UploadedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), seeded); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/resume/resume-1", nil)
	req.Header.Set("X-Guest-Id", "intruder")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign resume, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/resume/resume-1", nil)
	req.Header.Set("X-Guest-Id", "owner")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", resp.Code)
	}
}

func TestListNewestFirst(t *testing.T) {
	router, repo, _ := setupResumeRouter(t, &stubLLM{}, nil)

	base := time.Now().UTC()
	for i, id := range []string{"resume-a", "resume-b", "resume-c"} {
		err := repo.Create(context.Background(), Resume{
			ID:         id,
			UserID:     "guest:lister",
			FileName:   id + ".pdf",
			Status:     StatusParsed,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed resume: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/resume?limit=2", nil)
	req.Header.Set("X-Guest-Id", "lister")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listed []ResumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(listed))
	}
	if listed[0].ResumeID != "resume-c" || listed[1].ResumeID != "resume-b" {
		t.Fatalf("expected newest-first ordering, got %s, %s", listed[0].ResumeID, listed[1].ResumeID)
	}
}

func TestDeleteRemovesResume(t *testing.T) {
	router, repo, _ := setupResumeRouter(t, &stubLLM{}, nil)

	if err := repo.Create(context.Background(), Resume{ID: "resume-del", UserID: "guest:owner", Status: StatusParsed}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/resume/resume-del", nil)
	req.Header.Set("X-Guest-Id", "owner")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	if _, err := repo.Get(context.Background(), "resume-del"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected resume to be deleted, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	router, repo, _ := setupResumeRouter(t, &stubLLM{}, nil)

	body, contentType := multipartUpload(t, "resume.pdf", bytes.Repeat([]byte("a"), 11<<20))
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d body=%s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("10MB limit")) {
		t.Fatalf("expected size-limit message, got %s", resp.Body.String())
	}

	resumes, err := repo.ListByUser(context.Background(), "guest:test-guest", 10, 0)
	if err != nil {
		t.Fatalf("list resumes: %v", err)
	}
	if len(resumes) != 0 {
		t.Fatalf("oversized upload must not create a resume, got %d", len(resumes))
	}
}

type conflictRepo struct {
	*MemoryRepo
}

func (r conflictRepo) Delete(ctx context.Context, userID, resumeID string) error {
	return ErrInUse
}

func TestDeleteReferencedResumeConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: conflictRepo{NewMemoryRepo()}, Store: local.New(t.TempDir())}
	router := gin.New()
	router.Use(middleware.Auth("dev"))
	NewHandler(svc).RegisterRoutes(router.Group("/api/resume"))

	req := httptest.NewRequest(http.MethodDelete, "/api/resume/resume-1", nil)
	req.Header.Set("X-Guest-Id", "owner")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("interview sessions")) {
		t.Fatalf("expected conflict message, got %s", resp.Body.String())
	}
}
