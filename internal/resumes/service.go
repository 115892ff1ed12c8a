package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hareesh3232/Mock-test-interview/internal/extract"
	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/queue"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/metrics"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/telemetry"
)

// Service contains business logic for resume upload and parsing.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	LLM   llm.Client
	// Queue, when set, routes parsing to a background worker instead of an
	// in-process goroutine.
	Queue queue.Client
}

// Upload saves the file to object storage, records the resume, and kicks off
// asynchronous parsing.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	if userID == "" {
		return Resume{}, errors.New("user id is required")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Resume{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if !supportedResumeFile(fileName) {
		return Resume{}, fmt.Errorf("%w: only PDF and DOCX resumes are supported", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Resume{}, err
	}

	resume := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  size,
		Status:     StatusQueued,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	metrics.IncResumeParseStarted()

	s.dispatch(ctx, resume.ID)

	return resume, nil
}

func (s *Service) dispatch(ctx context.Context, resumeID string) {
	if s.Queue != nil {
		msg := queue.Message{
			ResumeID:   resumeID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Error("resume parse enqueue failed, falling back to inline", map[string]any{
			"resume_id": resumeID,
			"error":     err.Error(),
		})
	}
	go s.parseAsync(backgroundWithRequestID(ctx), resumeID)
}

// Get returns a resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, errors.New("user id and resume id are required")
	}
	return s.Repo.GetByUser(ctx, userID, resumeID)
}

// List returns resumes for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a resume and leaves the stored file for retention cleanup.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" || resumeID == "" {
		return errors.New("user id and resume id are required")
	}
	return s.Repo.Delete(ctx, userID, resumeID)
}

func (s *Service) parseAsync(ctx context.Context, resumeID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failResume(ctx, resumeID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.ProcessResume(ctx, resumeID)
}

// ProcessResume runs the parse pipeline for a queued resume. It is called both
// from the upload goroutine and from the queue worker.
func (s *Service) ProcessResume(ctx context.Context, resumeID string) error {
	startedAt := time.Now().UTC()

	if err := s.Repo.UpdateStatus(ctx, resumeID, StatusProcessing, nil, nil); err != nil {
		err = fmt.Errorf("set processing failed: %w", err)
		s.failResume(ctx, resumeID, "", err, &startedAt)
		return err
	}

	resume, err := s.Repo.Get(ctx, resumeID)
	if err != nil {
		err = fmt.Errorf("resume lookup: %w", err)
		s.failResume(ctx, resumeID, "", err, &startedAt)
		return err
	}
	telemetry.Info("resume.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           resume.UserID,
		"resume_id":         resume.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	if s.Store == nil {
		err := errors.New("missing object store")
		s.failResume(ctx, resumeID, resume.UserID, err, &startedAt)
		return err
	}
	if s.LLM == nil {
		err := errors.New("missing llm client")
		s.failResume(ctx, resumeID, resume.UserID, err, &startedAt)
		return err
	}

	text, err := extract.Text(ctx, s.Store, resume.StorageKey, resume.MimeType, resume.FileName)
	if err != nil {
		err = fmt.Errorf("extraction resume=%s mime=%s: %w", resume.ID, resume.MimeType, err)
		s.failResume(ctx, resumeID, resume.UserID, err, &startedAt)
		return err
	}
	if strings.TrimSpace(text) == "" {
		err := fmt.Errorf("extraction resume=%s: empty document text", resume.ID)
		s.failResume(ctx, resumeID, resume.UserID, err, &startedAt)
		return err
	}

	parsed, err := s.LLM.ParseResume(ctx, text)
	if err != nil {
		err = fmt.Errorf("llm parse: %w", err)
		s.failResume(ctx, resumeID, resume.UserID, err, &startedAt)
		return err
	}

	parsedAt := time.Now().UTC()
	if err := s.Repo.UpdateParsed(ctx, resumeID, parsed, parsedAt); err != nil {
		err = fmt.Errorf("set parsed result failed: %w", err)
		s.failResume(ctx, resumeID, resume.UserID, err, &startedAt)
		return err
	}

	metrics.IncResumeParseCompleted()
	metrics.ObserveResumeParseDurationMs(durationMs(&startedAt, &parsedAt))
	telemetry.Info("resume.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           resume.UserID,
		"resume_id":         resume.ID,
		"status":            StatusParsed,
		"status_transition": "processing->parsed",
		"duration_ms":       durationMs(&startedAt, &parsedAt),
		"skills":            len(parsed.Skills),
	})
	return nil
}

func (s *Service) failResume(ctx context.Context, resumeID, userID string, err error, startedAt *time.Time) {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.UpdateStatus(context.Background(), resumeID, StatusFailed, &code, &msg); updateErr != nil {
		telemetry.Error("failResume: update failed", map[string]any{
			"resume_id": resumeID,
			"error":     updateErr.Error(),
			"original":  sanitizeError(err),
		})
	}
	metrics.IncResumeParseFailed()
	if startedAt != nil {
		metrics.ObserveResumeParseDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("resume.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"resume_id":         resumeID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeLLMTimeout
	}
	if errors.Is(err, extract.ErrUnsupportedType) {
		return ErrorCodeValidation
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") && strings.Contains(msg, "llm"):
		return ErrorCodeLLMTimeout
	case strings.Contains(msg, "llm parse") || strings.Contains(msg, "llm output"):
		return ErrorCodeLLMSchemaMismatch
	case strings.Contains(msg, "extraction"):
		return ErrorCodeExtraction
	case strings.Contains(msg, "resume lookup") || strings.Contains(msg, "set processing") || strings.Contains(msg, "set parsed") || strings.Contains(msg, "storage"):
		return ErrorCodeStorage
	default:
		return ErrorCodeInternal
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func supportedResumeFile(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".docx", ".doc":
		return true
	default:
		return false
	}
}
