package interviews

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

type MemoryRepo struct {
	mu         sync.RWMutex
	interviews map[string]Interview
	answers    map[string][]QAPair
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		interviews: make(map[string]Interview),
		answers:    make(map[string][]QAPair),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, interview Interview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if interview.StartedAt.IsZero() {
		interview.StartedAt = time.Now().UTC()
	}
	r.interviews[interview.ID] = interview
	return nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID, interviewID string) (Interview, error) {
	if err := ctx.Err(); err != nil {
		return Interview{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	interview, ok := r.interviews[interviewID]
	if !ok || interview.UserID != userID {
		return Interview{}, ErrNotFound
	}
	return interview, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Interview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]Interview, 0)
	for _, interview := range r.interviews {
		if interview.UserID == userID {
			owned = append(owned, interview)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].StartedAt.After(owned[j].StartedAt)
	})

	if offset >= len(owned) {
		return []Interview{}, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (r *MemoryRepo) SaveAnswer(ctx context.Context, answer QAPair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interviews[answer.InterviewID]; !ok {
		return ErrNotFound
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now().UTC()
	}
	r.answers[answer.InterviewID] = append(r.answers[answer.InterviewID], answer)
	return nil
}

func (r *MemoryRepo) ListAnswers(ctx context.Context, interviewID string) ([]QAPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	answers := make([]QAPair, len(r.answers[interviewID]))
	copy(answers, r.answers[interviewID])
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})
	return answers, nil
}

func (r *MemoryRepo) Complete(ctx context.Context, interviewID string, technical, communication, overall float64, feedback llm.Feedback, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	interview, ok := r.interviews[interviewID]
	if !ok {
		return ErrNotFound
	}
	interview.Status = StatusCompleted
	interview.TechnicalScore = technical
	interview.CommunicationScore = communication
	interview.OverallScore = overall
	copied := feedback
	interview.Feedback = &copied
	interview.CompletedAt = &completedAt
	r.interviews[interviewID] = interview
	return nil
}
