package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for resume parsing, question generation, and scoring.
type Client interface {
	ParseResume(ctx context.Context, resumeText string) (ParsedResume, error)
	GenerateQuestions(ctx context.Context, input QuestionInput) ([]Question, error)
	EvaluateAnswer(ctx context.Context, input AnswerInput) (Evaluation, error)
	FinalFeedback(ctx context.Context, performance []QuestionPerformance) (Feedback, error)
}

// ParsedResume is the structured output of resume parsing.
type ParsedResume struct {
	PersonalInfo    map[string]string `json:"personalInfo,omitempty"`
	Skills          []string          `json:"skills"`
	ExperienceYears float64           `json:"experienceYears"`
	EducationLevel  string            `json:"educationLevel"`
	Summary         string            `json:"summary,omitempty"`
}

// QuestionInput captures the inputs needed for question generation.
type QuestionInput struct {
	JobTitle       string
	Company        string
	JobDescription string
	Requirements   []string
	ResumeSkills   []string
	Count          int
}

// Question is a single generated interview question.
type Question struct {
	Question         string   `json:"question"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	ExpectedKeywords []string `json:"expectedKeywords"`
	TimeLimitMinutes int      `json:"timeLimitMinutes"`
}

// AnswerInput captures a question/answer pair for evaluation.
type AnswerInput struct {
	Question         string
	Answer           string
	QuestionType     string
	ExpectedKeywords []string
}

// Evaluation is the scored judgement of a single answer. Scores are 0-10.
type Evaluation struct {
	TechnicalScore     float64  `json:"technicalScore"`
	CommunicationScore float64  `json:"communicationScore"`
	RelevanceScore     float64  `json:"relevanceScore"`
	OverallScore       float64  `json:"overallScore"`
	Feedback           string   `json:"feedback"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Suggestions        []string `json:"suggestions"`
}

// QuestionPerformance summarizes one answered question for final feedback.
type QuestionPerformance struct {
	Question           string  `json:"question"`
	Answer             string  `json:"answer"`
	TechnicalScore     float64 `json:"technicalScore"`
	CommunicationScore float64 `json:"communicationScore"`
	OverallScore       float64 `json:"overallScore"`
}

// Feedback is the whole-interview report.
type Feedback struct {
	OverallPerformance     string   `json:"overallPerformance"`
	TechnicalStrengths     []string `json:"technicalStrengths"`
	CommunicationStrengths []string `json:"communicationStrengths"`
	ImprovementAreas       []string `json:"improvementAreas"`
	Recommendations        []string `json:"recommendations"`
	NextSteps              []string `json:"nextSteps"`
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

func (PlaceholderClient) ParseResume(ctx context.Context, resumeText string) (ParsedResume, error) {
	_ = ctx
	_ = resumeText
	return ParsedResume{}, ErrNotImplemented
}

func (PlaceholderClient) GenerateQuestions(ctx context.Context, input QuestionInput) ([]Question, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

func (PlaceholderClient) EvaluateAnswer(ctx context.Context, input AnswerInput) (Evaluation, error) {
	_ = ctx
	_ = input
	return Evaluation{}, ErrNotImplemented
}

func (PlaceholderClient) FinalFeedback(ctx context.Context, performance []QuestionPerformance) (Feedback, error) {
	_ = ctx
	_ = performance
	return Feedback{}, ErrNotImplemented
}

var _ Client = PlaceholderClient{}
