package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, interview Interview) error {
	questions, err := json.Marshal(interview.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	const query = `
INSERT INTO interviews (id, user_id, resume_id, job_id, questions, status, started_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, query,
		interview.ID,
		interview.UserID,
		interview.ResumeID,
		interview.JobID,
		questions,
		interview.Status,
		interview.StartedAt,
	)
	return err
}

func (r *PGRepo) GetByUser(ctx context.Context, userID, interviewID string) (Interview, error) {
	const query = `
SELECT id, user_id, resume_id, job_id, questions, status,
       technical_score, communication_score, overall_score, feedback,
       started_at, completed_at
FROM interviews
WHERE id = $1 AND user_id = $2
LIMIT 1`
	return scanInterview(r.DB.QueryRowContext(ctx, query, interviewID, userID))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Interview, error) {
	const query = `
SELECT id, user_id, resume_id, job_id, questions, status,
       technical_score, communication_score, overall_score, feedback,
       started_at, completed_at
FROM interviews
WHERE user_id = $1
ORDER BY started_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := make([]Interview, 0)
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}
	return interviews, rows.Err()
}

func (r *PGRepo) SaveAnswer(ctx context.Context, answer QAPair) error {
	strengths, err := json.Marshal(answer.Strengths)
	if err != nil {
		return fmt.Errorf("marshal strengths: %w", err)
	}
	weaknesses, err := json.Marshal(answer.Weaknesses)
	if err != nil {
		return fmt.Errorf("marshal weaknesses: %w", err)
	}
	suggestions, err := json.Marshal(answer.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	const query = `
INSERT INTO qa_pairs (id, interview_id, question_index, question_text, answer_text, question_type,
                      technical_score, communication_score, relevance_score, overall_score,
                      feedback, strengths, weaknesses, suggestions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())`
	_, err = r.DB.ExecContext(ctx, query,
		answer.ID,
		answer.InterviewID,
		answer.QuestionIndex,
		answer.QuestionText,
		answer.AnswerText,
		answer.QuestionType,
		answer.TechnicalScore,
		answer.CommunicationScore,
		answer.RelevanceScore,
		answer.OverallScore,
		answer.Feedback,
		strengths,
		weaknesses,
		suggestions,
	)
	return err
}

func (r *PGRepo) ListAnswers(ctx context.Context, interviewID string) ([]QAPair, error) {
	const query = `
SELECT id, interview_id, question_index, question_text, answer_text, question_type,
       technical_score, communication_score, relevance_score, overall_score,
       feedback, strengths, weaknesses, suggestions, created_at
FROM qa_pairs
WHERE interview_id = $1
ORDER BY question_index ASC`
	rows, err := r.DB.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]QAPair, 0)
	for rows.Next() {
		var answer QAPair
		var feedback sql.NullString
		var strengths []byte
		var weaknesses []byte
		var suggestions []byte
		err := rows.Scan(
			&answer.ID,
			&answer.InterviewID,
			&answer.QuestionIndex,
			&answer.QuestionText,
			&answer.AnswerText,
			&answer.QuestionType,
			&answer.TechnicalScore,
			&answer.CommunicationScore,
			&answer.RelevanceScore,
			&answer.OverallScore,
			&feedback,
			&strengths,
			&weaknesses,
			&suggestions,
			&answer.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if feedback.Valid {
			answer.Feedback = feedback.String
		}
		if err := unmarshalStrings(strengths, &answer.Strengths); err != nil {
			return nil, err
		}
		if err := unmarshalStrings(weaknesses, &answer.Weaknesses); err != nil {
			return nil, err
		}
		if err := unmarshalStrings(suggestions, &answer.Suggestions); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, rows.Err()
}

func (r *PGRepo) Complete(ctx context.Context, interviewID string, technical, communication, overall float64, feedback llm.Feedback, completedAt time.Time) error {
	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	const query = `
UPDATE interviews
SET status = $2,
    technical_score = $3,
    communication_score = $4,
    overall_score = $5,
    feedback = $6,
    completed_at = $7
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		interviewID,
		StatusCompleted,
		technical,
		communication,
		overall,
		feedbackJSON,
		completedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (Interview, error) {
	var interview Interview
	var questions []byte
	var technical sql.NullFloat64
	var communication sql.NullFloat64
	var overall sql.NullFloat64
	var feedback []byte
	var completedAt sql.NullTime

	err := row.Scan(
		&interview.ID,
		&interview.UserID,
		&interview.ResumeID,
		&interview.JobID,
		&questions,
		&interview.Status,
		&technical,
		&communication,
		&overall,
		&feedback,
		&interview.StartedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Interview{}, ErrNotFound
		}
		return Interview{}, err
	}

	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &interview.Questions); err != nil {
			return Interview{}, fmt.Errorf("unmarshal questions: %w", err)
		}
	}
	if technical.Valid {
		interview.TechnicalScore = technical.Float64
	}
	if communication.Valid {
		interview.CommunicationScore = communication.Float64
	}
	if overall.Valid {
		interview.OverallScore = overall.Float64
	}
	if len(feedback) > 0 {
		var parsed llm.Feedback
		if err := json.Unmarshal(feedback, &parsed); err != nil {
			return Interview{}, fmt.Errorf("unmarshal feedback: %w", err)
		}
		interview.Feedback = &parsed
	}
	if completedAt.Valid {
		t := completedAt.Time
		interview.CompletedAt = &t
	}
	return interview, nil
}

func unmarshalStrings(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
