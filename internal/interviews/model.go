package interviews

import (
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	// StatusCancelled is reserved for session expiry handling.
	StatusCancelled = "cancelled"
)

// Interview is a mock interview session against one resume and one job.
type Interview struct {
	ID                 string
	UserID             string
	ResumeID           string
	JobID              string
	Questions          []llm.Question
	Status             string
	TechnicalScore     float64
	CommunicationScore float64
	OverallScore       float64
	Feedback           *llm.Feedback
	StartedAt          time.Time
	CompletedAt        *time.Time
}

// QAPair records one answered question with its evaluation.
type QAPair struct {
	ID                 string
	InterviewID        string
	QuestionIndex      int
	QuestionText       string
	AnswerText         string
	QuestionType       string
	TechnicalScore     float64
	CommunicationScore float64
	RelevanceScore     float64
	OverallScore       float64
	Feedback           string
	Strengths          []string
	Weaknesses         []string
	Suggestions        []string
	CreatedAt          time.Time
}
