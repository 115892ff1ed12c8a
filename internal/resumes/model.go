package resumes

import (
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusParsed     = "parsed"
	StatusFailed     = "failed"
)

// Resume represents an uploaded resume owned by a user, together with the
// structured data extracted from it.
type Resume struct {
	ID              string
	UserID          string
	FileName        string
	StorageKey      string
	MimeType        string
	SizeBytes       int64
	Status          string
	Parsed          *llm.ParsedResume
	Skills          []string
	ExperienceYears float64
	EducationLevel  string
	ErrorCode       string
	ErrorMessage    string
	UploadedAt      time.Time
	ParsedAt        *time.Time
}
