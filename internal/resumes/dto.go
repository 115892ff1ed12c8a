package resumes

import (
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID        string            `json:"resumeId"`
	FileName        string            `json:"fileName"`
	MimeType        string            `json:"mimeType"`
	SizeBytes       int64             `json:"sizeBytes"`
	Status          string            `json:"status"`
	Skills          []string          `json:"skills,omitempty"`
	ExperienceYears float64           `json:"experienceYears,omitempty"`
	EducationLevel  string            `json:"educationLevel,omitempty"`
	Parsed          *llm.ParsedResume `json:"parsed,omitempty"`
	ErrorCode       string            `json:"errorCode,omitempty"`
	ErrorMessage    string            `json:"errorMessage,omitempty"`
	UploadedAt      time.Time         `json:"uploadedAt"`
	ParsedAt        *time.Time        `json:"parsedAt,omitempty"`
}

func toResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:        resume.ID,
		FileName:        resume.FileName,
		MimeType:        resume.MimeType,
		SizeBytes:       resume.SizeBytes,
		Status:          resume.Status,
		Skills:          resume.Skills,
		ExperienceYears: resume.ExperienceYears,
		EducationLevel:  resume.EducationLevel,
		Parsed:          resume.Parsed,
		ErrorCode:       resume.ErrorCode,
		ErrorMessage:    resume.ErrorMessage,
		UploadedAt:      resume.UploadedAt,
		ParsedAt:        resume.ParsedAt,
	}
}
