package jobs

import "time"

// Job represents a job listing surfaced to candidates.
type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	SkillsRequired  []string  `json:"skillsRequired"`
	SalaryMin       float64   `json:"salaryMin,omitempty"`
	SalaryMax       float64   `json:"salaryMax,omitempty"`
	SalaryCurrency  string    `json:"salaryCurrency,omitempty"`
	JobType         string    `json:"jobType,omitempty"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	RemoteWork      bool      `json:"remoteWork"`
	JobURL          string    `json:"jobUrl,omitempty"`
	Source          string    `json:"source"`
	PostedDate      time.Time `json:"postedDate"`
	// MatchScore is the fraction of the job's required skills the candidate
	// covers. Only set on search results.
	MatchScore float64 `json:"matchScore,omitempty"`
}
