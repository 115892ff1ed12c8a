package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/interviews"
	"github.com/hareesh3232/Mock-test-interview/internal/jobs"
	"github.com/hareesh3232/Mock-test-interview/internal/resumes"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/telemetry"
)

const (
	// aggregationCap bounds how many rows feed a stats computation.
	aggregationCap = 200
	topSkillCount  = 5
)

// Service aggregates per-user activity for the dashboard endpoints.
type Service struct {
	Resumes    resumes.Repo
	Interviews interviews.Repo
	Jobs       jobs.Repo
}

// Stats is the per-user dashboard summary.
type Stats struct {
	TotalResumes        int      `json:"totalResumes"`
	TotalInterviews     int      `json:"totalInterviews"`
	CompletedInterviews int      `json:"completedInterviews"`
	AverageScores       Scores   `json:"averageScores"`
	TopSkills           []string `json:"topSkills"`
}

// Scores are mean values across completed interviews.
type Scores struct {
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
	Overall       float64 `json:"overall"`
}

// HistoryEntry is one completed interview in the user's history.
type HistoryEntry struct {
	InterviewID  string  `json:"interviewId"`
	JobTitle     string  `json:"jobTitle"`
	Company      string  `json:"company"`
	OverallScore float64 `json:"overallScore"`
	CompletedAt  string  `json:"completedAt"`
}

// ComputeStats builds the summary from the user's resumes and interviews.
func (s *Service) ComputeStats(ctx context.Context, userID string) (Stats, error) {
	userResumes, err := s.Resumes.ListByUser(ctx, userID, aggregationCap, 0)
	if err != nil {
		return Stats{}, err
	}
	userInterviews, err := s.Interviews.ListByUser(ctx, userID, aggregationCap, 0)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalResumes:    len(userResumes),
		TotalInterviews: len(userInterviews),
		TopSkills:       topSkills(userResumes),
	}

	for _, iv := range userInterviews {
		if iv.Status != interviews.StatusCompleted {
			continue
		}
		stats.CompletedInterviews++
		stats.AverageScores.Technical += iv.TechnicalScore
		stats.AverageScores.Communication += iv.CommunicationScore
		stats.AverageScores.Overall += iv.OverallScore
	}
	if stats.CompletedInterviews > 0 {
		n := float64(stats.CompletedInterviews)
		stats.AverageScores.Technical /= n
		stats.AverageScores.Communication /= n
		stats.AverageScores.Overall /= n
	}
	return stats, nil
}

// History lists the user's completed interviews, most recent first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	userInterviews, err := s.Interviews.ListByUser(ctx, userID, aggregationCap, 0)
	if err != nil {
		return nil, err
	}

	completed := make([]interviews.Interview, 0, len(userInterviews))
	for _, iv := range userInterviews {
		if iv.Status == interviews.StatusCompleted && iv.CompletedAt != nil {
			completed = append(completed, iv)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.After(*completed[j].CompletedAt)
	})
	if len(completed) > limit {
		completed = completed[:limit]
	}

	entries := make([]HistoryEntry, 0, len(completed))
	for _, iv := range completed {
		entry := HistoryEntry{
			InterviewID:  iv.ID,
			JobTitle:     "Unknown",
			Company:      "Unknown",
			OverallScore: iv.OverallScore,
			CompletedAt:  iv.CompletedAt.UTC().Format(time.RFC3339),
		}
		job, err := s.Jobs.GetByID(ctx, iv.JobID)
		if err == nil {
			entry.JobTitle = job.Title
			entry.Company = job.Company
		} else {
			telemetry.Error("history job lookup failed", map[string]any{
				"interview_id": iv.ID,
				"job_id":       iv.JobID,
				"error":        err.Error(),
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// topSkills counts skill frequency across parsed resumes and returns the most common.
func topSkills(userResumes []resumes.Resume) []string {
	counts := map[string]int{}
	display := map[string]string{}
	for _, r := range userResumes {
		if r.Status != resumes.StatusParsed {
			continue
		}
		for _, skill := range r.Skills {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" {
				continue
			}
			if _, seen := display[key]; !seen {
				display[key] = strings.TrimSpace(skill)
			}
			counts[key]++
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > topSkillCount {
		keys = keys[:topSkillCount]
	}

	top := make([]string, 0, len(keys))
	for _, key := range keys {
		top = append(top, display[key])
	}
	return top
}
