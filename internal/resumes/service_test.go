package resumes

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object"
	local "github.com/hareesh3232/Mock-test-interview/internal/shared/storage/object/local"
)

func docxFixture(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func seedQueuedResume(t *testing.T, repo *MemoryRepo, store object.ObjectStore, userID string) string {
	t.Helper()
	key, size, mimeType, err := store.Save(context.Background(), userID, "resume.docx", bytes.NewReader(docxFixture(t, "Go engineer, five years of backend work")))
	if err != nil {
		t.Fatalf("save resume file: %v", err)
	}
	resume := Resume{
		ID:         "resume-proc",
		UserID:     userID,
		FileName:   "resume.docx",
		StorageKey: key,
		MimeType:   mimeType,
		SizeBytes:  size,
		Status:     StatusQueued,
		UploadedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("create resume: %v", err)
	}
	return resume.ID
}

func TestProcessResumeParses(t *testing.T) {
	repo := NewMemoryRepo()
	store := local.New(t.TempDir())
	llmStub := &stubLLM{parsed: llm.ParsedResume{
		Skills:          []string{"go", "docker"},
		ExperienceYears: 5,
		EducationLevel:  "Bachelor's",
		Summary:         "Backend engineer",
	}}
	svc := &Service{Repo: repo, Store: store, LLM: llmStub}

	resumeID := seedQueuedResume(t, repo, store, "guest:proc")
	if err := svc.ProcessResume(context.Background(), resumeID); err != nil {
		t.Fatalf("ProcessResume: %v", err)
	}

	resume, err := repo.Get(context.Background(), resumeID)
	if err != nil {
		t.Fatalf("get resume: %v", err)
	}
	if resume.Status != StatusParsed {
		t.Fatalf("status = %q, want parsed", resume.Status)
	}
	if resume.Parsed == nil || len(resume.Skills) != 2 {
		t.Fatalf("parsed data not stored: %+v", resume)
	}
	if resume.ParsedAt == nil {
		t.Fatal("parsedAt not set")
	}
	if resume.ExperienceYears != 5 {
		t.Fatalf("experienceYears = %v", resume.ExperienceYears)
	}
}

func TestProcessResumeLLMFailure(t *testing.T) {
	repo := NewMemoryRepo()
	store := local.New(t.TempDir())
	llmStub := &stubLLM{parseErr: errors.New("llm output invalid")}
	svc := &Service{Repo: repo, Store: store, LLM: llmStub}

	resumeID := seedQueuedResume(t, repo, store, "guest:proc")
	if err := svc.ProcessResume(context.Background(), resumeID); err == nil {
		t.Fatal("expected error")
	}

	resume, err := repo.Get(context.Background(), resumeID)
	if err != nil {
		t.Fatalf("get resume: %v", err)
	}
	if resume.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", resume.Status)
	}
	if resume.ErrorCode != ErrorCodeLLMSchemaMismatch {
		t.Fatalf("errorCode = %q", resume.ErrorCode)
	}
	if resume.ErrorMessage == "" {
		t.Fatal("errorMessage must be recorded")
	}
}

func TestProcessResumeMissingResume(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: local.New(t.TempDir()), LLM: &stubLLM{}}

	if err := svc.ProcessResume(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unknown resume")
	}
}

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("llm parse: bad json"), ErrorCodeLLMSchemaMismatch},
		{errors.New("extraction resume=r mime=application/pdf: broken"), ErrorCodeExtraction},
		{errors.New("set processing failed: db down"), ErrorCodeStorage},
		{context.DeadlineExceeded, ErrorCodeLLMTimeout},
		{errors.New("something else"), ErrorCodeInternal},
	}
	for _, c := range cases {
		if got := classifyFailure(c.err); got != c.want {
			t.Fatalf("classifyFailure(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
