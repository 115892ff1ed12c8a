package interviews

import (
	"context"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

// Repo defines persistence operations for interview sessions.
type Repo interface {
	Create(ctx context.Context, interview Interview) error
	GetByUser(ctx context.Context, userID, interviewID string) (Interview, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Interview, error)
	SaveAnswer(ctx context.Context, answer QAPair) error
	ListAnswers(ctx context.Context, interviewID string) ([]QAPair, error)
	Complete(ctx context.Context, interviewID string, technical, communication, overall float64, feedback llm.Feedback, completedAt time.Time) error
}
