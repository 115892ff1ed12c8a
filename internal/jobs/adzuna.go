package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultAdzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// AdzunaSource fetches live listings from the Adzuna job search API.
type AdzunaSource struct {
	appID   string
	appKey  string
	country string
	baseURL string
	http    *http.Client
}

// NewAdzunaSource builds an Adzuna-backed job source.
func NewAdzunaSource(appID, appKey string) (*AdzunaSource, error) {
	if strings.TrimSpace(appID) == "" || strings.TrimSpace(appKey) == "" {
		return nil, errors.New("adzuna app id and key are required")
	}
	return &AdzunaSource{
		appID:   appID,
		appKey:  appKey,
		country: "us",
		baseURL: defaultAdzunaBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *AdzunaSource) Name() string { return "Adzuna" }

type adzunaResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description    string  `json:"description"`
	SalaryMin      float64 `json:"salary_min"`
	SalaryMax      float64 `json:"salary_max"`
	ContractType   string  `json:"contract_type"`
	RedirectURL    string  `json:"redirect_url"`
	Created        string  `json:"created"`
	SalaryCurrency string  `json:"salary_currency"`
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

func (s *AdzunaSource) Search(ctx context.Context, query SearchQuery) ([]Job, error) {
	count := query.Count
	if count <= 0 {
		count = 20
	}

	params := url.Values{}
	params.Set("app_id", s.appID)
	params.Set("app_key", s.appKey)
	params.Set("what", strings.Join(query.Skills, " "))
	if query.Location != "" {
		params.Set("where", query.Location)
	}
	params.Set("results_per_page", strconv.Itoa(count))

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", s.baseURL, s.country, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna status %d", resp.StatusCode)
	}

	var parsed adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	listings := make([]Job, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		company := result.Company.DisplayName
		if company == "" {
			company = "Unknown Company"
		}
		location := result.Location.DisplayName
		if location == "" {
			location = "Unknown Location"
		}
		currency := result.SalaryCurrency
		if currency == "" {
			currency = "USD"
		}
		jobType := result.ContractType
		if jobType == "" {
			jobType = "Full-time"
		}
		listings = append(listings, Job{
			ID:              "adzuna-" + result.ID,
			Title:           result.Title,
			Company:         company,
			Location:        location,
			Description:     result.Description,
			Requirements:    extractRequirements(result.Description),
			SkillsRequired:  extractSkills(result.Description),
			SalaryMin:       result.SalaryMin,
			SalaryMax:       result.SalaryMax,
			SalaryCurrency:  currency,
			JobType:         jobType,
			ExperienceLevel: experienceLevelFromTitle(result.Title),
			RemoteWork:      strings.Contains(strings.ToLower(result.Description), "remote"),
			JobURL:          result.RedirectURL,
			Source:          "Adzuna",
			PostedDate:      parsePostedDate(result.Created),
		})
	}
	return listings, nil
}

func experienceLevelFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, word := range []string{"senior", "lead", "principal", "staff"} {
		if strings.Contains(lower, word) {
			return "Senior"
		}
	}
	for _, word := range []string{"junior", "entry", "intern", "trainee"} {
		if strings.Contains(lower, word) {
			return "Junior"
		}
	}
	return "Mid"
}

func parsePostedDate(raw string) time.Time {
	if raw == "" {
		return time.Now().UTC()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

var requirementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\+?\s*years?\s+experience`),
	regexp.MustCompile(`(?i)Bachelor[^,\n]*`),
	regexp.MustCompile(`(?i)Master[^,\n]*`),
	regexp.MustCompile(`(?i)PhD[^,\n]*`),
	regexp.MustCompile(`(?i)Strong\s+[^,\n]+`),
	regexp.MustCompile(`(?i)Experience\s+with\s+[^,\n]+`),
	regexp.MustCompile(`(?i)Knowledge\s+of\s+[^,\n]+`),
}

func extractRequirements(description string) []string {
	requirements := make([]string, 0, 5)
	for _, pattern := range requirementPatterns {
		for _, match := range pattern.FindAllString(description, -1) {
			requirements = append(requirements, strings.TrimSpace(match))
			if len(requirements) == 5 {
				return requirements
			}
		}
	}
	return requirements
}

var knownSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "React", "Angular", "Vue",
	"Node.js", "Django", "Flask", "Spring", "AWS", "Azure", "Docker",
	"Kubernetes", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Git",
	"Linux", "Agile", "Scrum", "REST API", "GraphQL", "Microservices",
}

func extractSkills(description string) []string {
	lower := strings.ToLower(description)
	found := make([]string, 0)
	for _, skill := range knownSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

var _ Source = (*AdzunaSource)(nil)
