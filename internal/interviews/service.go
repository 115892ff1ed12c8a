package interviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hareesh3232/Mock-test-interview/internal/jobs"
	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/resumes"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/metrics"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/telemetry"
)

const (
	defaultQuestionCount = 10
	maxQuestionCount     = 20
)

// Service contains business logic for interview sessions.
type Service struct {
	Repo       Repo
	ResumeRepo resumes.Repo
	JobRepo    jobs.Repo
	LLM        llm.Client

	// fallback serves canned outputs when the LLM misbehaves mid-interview.
	fallback llm.FallbackClient
}

// Generate produces job-specific interview questions for a resume/job pair.
func (s *Service) Generate(ctx context.Context, userID, resumeID, jobID string, count int) ([]llm.Question, error) {
	if userID == "" || resumeID == "" || jobID == "" {
		return nil, errors.New("user id, resume id and job id are required")
	}
	if count <= 0 {
		count = defaultQuestionCount
	}
	if count > maxQuestionCount {
		count = maxQuestionCount
	}

	resume, err := s.ResumeRepo.GetByUser(ctx, userID, resumeID)
	if err != nil {
		return nil, fmt.Errorf("resume lookup: %w", err)
	}
	job, err := s.JobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("job lookup: %w", err)
	}

	input := llm.QuestionInput{
		JobTitle:       job.Title,
		Company:        job.Company,
		JobDescription: job.Description,
		Requirements:   job.Requirements,
		ResumeSkills:   resume.Skills,
		Count:          count,
	}

	questions, err := s.LLM.GenerateQuestions(ctx, input)
	if err != nil {
		telemetry.Error("question generation failed, using fallback set", map[string]any{
			"resume_id": resumeID,
			"job_id":    jobID,
			"error":     err.Error(),
		})
		return s.fallback.GenerateQuestions(ctx, input)
	}
	return questions, nil
}

// Start creates an in-progress interview session with the given questions.
func (s *Service) Start(ctx context.Context, userID, resumeID, jobID string, questions []llm.Question) (Interview, error) {
	if userID == "" || resumeID == "" || jobID == "" {
		return Interview{}, errors.New("user id, resume id and job id are required")
	}
	if len(questions) == 0 {
		return Interview{}, errors.New("questions are required")
	}

	if _, err := s.ResumeRepo.GetByUser(ctx, userID, resumeID); err != nil {
		return Interview{}, fmt.Errorf("resume lookup: %w", err)
	}
	if _, err := s.JobRepo.GetByID(ctx, jobID); err != nil {
		return Interview{}, fmt.Errorf("job lookup: %w", err)
	}

	interview := Interview{
		ID:        uuid.NewString(),
		UserID:    userID,
		ResumeID:  resumeID,
		JobID:     jobID,
		Questions: questions,
		Status:    StatusInProgress,
		StartedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, interview); err != nil {
		return Interview{}, err
	}

	metrics.IncInterviewStarted()
	telemetry.Info("interview.status", map[string]any{
		"user_id":      userID,
		"interview_id": interview.ID,
		"status":       StatusInProgress,
		"questions":    len(questions),
	})
	return interview, nil
}

// SubmitResult is the outcome of one submitted answer.
type SubmitResult struct {
	InterviewID   string         `json:"interviewId"`
	QuestionIndex int            `json:"questionIndex"`
	Evaluation    llm.Evaluation `json:"evaluation"`
	IsComplete    bool           `json:"isComplete"`
	NextQuestion  *llm.Question  `json:"nextQuestion,omitempty"`
	OverallScores *OverallScores `json:"overallScores,omitempty"`
	FinalFeedback *llm.Feedback  `json:"finalFeedback,omitempty"`
}

// OverallScores aggregates per-answer scores after completion.
type OverallScores struct {
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
	Overall       float64 `json:"overall"`
}

// Submit evaluates one answer. Answers must arrive in question order; the last
// answer completes the session and triggers final feedback.
func (s *Service) Submit(ctx context.Context, userID, interviewID string, questionIndex int, answer string) (SubmitResult, error) {
	if userID == "" || interviewID == "" {
		return SubmitResult{}, errors.New("user id and interview id are required")
	}
	if strings.TrimSpace(answer) == "" {
		return SubmitResult{}, errors.New("answer is required")
	}

	interview, err := s.Repo.GetByUser(ctx, userID, interviewID)
	if err != nil {
		return SubmitResult{}, err
	}
	if interview.Status == StatusCompleted {
		return SubmitResult{}, ErrCompleted
	}
	if questionIndex < 0 || questionIndex >= len(interview.Questions) {
		return SubmitResult{}, ErrInvalidIndex
	}

	answered, err := s.Repo.ListAnswers(ctx, interviewID)
	if err != nil {
		return SubmitResult{}, err
	}
	if questionIndex != len(answered) {
		return SubmitResult{}, fmt.Errorf("%w: expected index %d, got %d", ErrOutOfOrder, len(answered), questionIndex)
	}

	question := interview.Questions[questionIndex]
	evaluation := s.evaluate(ctx, interview, question, answer)

	pair := QAPair{
		ID:                 uuid.NewString(),
		InterviewID:        interviewID,
		QuestionIndex:      questionIndex,
		QuestionText:       question.Question,
		AnswerText:         answer,
		QuestionType:       question.Type,
		TechnicalScore:     evaluation.TechnicalScore,
		CommunicationScore: evaluation.CommunicationScore,
		RelevanceScore:     evaluation.RelevanceScore,
		OverallScore:       evaluation.OverallScore,
		Feedback:           evaluation.Feedback,
		Strengths:          evaluation.Strengths,
		Weaknesses:         evaluation.Weaknesses,
		Suggestions:        evaluation.Suggestions,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.Repo.SaveAnswer(ctx, pair); err != nil {
		return SubmitResult{}, err
	}
	metrics.IncAnswerEvaluated()

	result := SubmitResult{
		InterviewID:   interviewID,
		QuestionIndex: questionIndex,
		Evaluation:    evaluation,
	}

	if questionIndex+1 < len(interview.Questions) {
		next := interview.Questions[questionIndex+1]
		result.NextQuestion = &next
		return result, nil
	}

	scores, feedback, err := s.complete(ctx, interview, append(answered, pair))
	if err != nil {
		return SubmitResult{}, err
	}
	result.IsComplete = true
	result.OverallScores = &scores
	result.FinalFeedback = &feedback
	return result, nil
}

func (s *Service) evaluate(ctx context.Context, interview Interview, question llm.Question, answer string) llm.Evaluation {
	input := llm.AnswerInput{
		Question:         question.Question,
		Answer:           answer,
		QuestionType:     question.Type,
		ExpectedKeywords: question.ExpectedKeywords,
	}
	evaluation, err := s.LLM.EvaluateAnswer(ctx, input)
	if err != nil {
		telemetry.Error("answer evaluation failed, using fallback scores", map[string]any{
			"interview_id": interview.ID,
			"error":        err.Error(),
		})
		evaluation, _ = s.fallback.EvaluateAnswer(ctx, input)
	}
	return evaluation
}

func (s *Service) complete(ctx context.Context, interview Interview, answers []QAPair) (OverallScores, llm.Feedback, error) {
	var scores OverallScores
	if len(answers) > 0 {
		for _, answer := range answers {
			scores.Technical += answer.TechnicalScore
			scores.Communication += answer.CommunicationScore
			scores.Overall += answer.OverallScore
		}
		n := float64(len(answers))
		scores.Technical /= n
		scores.Communication /= n
		scores.Overall /= n
	}

	performance := make([]llm.QuestionPerformance, 0, len(answers))
	for _, answer := range answers {
		performance = append(performance, llm.QuestionPerformance{
			Question:           answer.QuestionText,
			Answer:             answer.AnswerText,
			TechnicalScore:     answer.TechnicalScore,
			CommunicationScore: answer.CommunicationScore,
			OverallScore:       answer.OverallScore,
		})
	}

	feedback, err := s.LLM.FinalFeedback(ctx, performance)
	if err != nil {
		telemetry.Error("final feedback failed, using fallback", map[string]any{
			"interview_id": interview.ID,
			"error":        err.Error(),
		})
		feedback, _ = s.fallback.FinalFeedback(ctx, performance)
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, interview.ID, scores.Technical, scores.Communication, scores.Overall, feedback, completedAt); err != nil {
		return OverallScores{}, llm.Feedback{}, err
	}

	metrics.IncInterviewCompleted()
	telemetry.Info("interview.status", map[string]any{
		"user_id":           interview.UserID,
		"interview_id":      interview.ID,
		"status":            StatusCompleted,
		"status_transition": "in_progress->completed",
		"overall_score":     scores.Overall,
	})
	return scores, feedback, nil
}

// StatusView reports session progress.
type StatusView struct {
	InterviewID        string        `json:"interviewId"`
	Status             string        `json:"status"`
	CurrentQuestion    int           `json:"currentQuestion"`
	TotalQuestions     int           `json:"totalQuestions"`
	ProgressPercentage float64       `json:"progressPercentage"`
	Scores             OverallScores `json:"scores"`
	IsComplete         bool          `json:"isComplete"`
}

// Status returns interview progress for polling clients.
func (s *Service) Status(ctx context.Context, userID, interviewID string) (StatusView, error) {
	interview, err := s.Repo.GetByUser(ctx, userID, interviewID)
	if err != nil {
		return StatusView{}, err
	}
	answers, err := s.Repo.ListAnswers(ctx, interviewID)
	if err != nil {
		return StatusView{}, err
	}

	view := StatusView{
		InterviewID:     interview.ID,
		Status:          interview.Status,
		CurrentQuestion: len(answers),
		TotalQuestions:  len(interview.Questions),
		Scores: OverallScores{
			Technical:     interview.TechnicalScore,
			Communication: interview.CommunicationScore,
			Overall:       interview.OverallScore,
		},
		IsComplete: interview.Status == StatusCompleted,
	}
	if view.TotalQuestions > 0 {
		view.ProgressPercentage = float64(view.CurrentQuestion) / float64(view.TotalQuestions) * 100
	}
	return view, nil
}

// Results returns the full evaluation once the session is completed.
func (s *Service) Results(ctx context.Context, userID, interviewID string) (Interview, []QAPair, error) {
	interview, err := s.Repo.GetByUser(ctx, userID, interviewID)
	if err != nil {
		return Interview{}, nil, err
	}
	if interview.Status != StatusCompleted {
		return Interview{}, nil, ErrNotCompleted
	}
	answers, err := s.Repo.ListAnswers(ctx, interviewID)
	if err != nil {
		return Interview{}, nil, err
	}
	return interview, answers, nil
}
