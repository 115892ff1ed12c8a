package jobs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// minMatchScore is the minimum skill overlap for a catalog job to be returned.
const minMatchScore = 0.2

// MockSource serves jobs from a built-in catalog, matched against the
// candidate's skills. Used when no external provider is configured.
type MockSource struct{}

func (MockSource) Name() string { return "Mock API" }

func (MockSource) Search(ctx context.Context, query SearchQuery) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userSkills := make(map[string]struct{}, len(query.Skills))
	for _, skill := range query.Skills {
		userSkills[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	matched := make([]Job, 0, len(mockCatalog))
	for i, job := range mockCatalog {
		score := matchScore(job.SkillsRequired, userSkills)
		if score <= minMatchScore {
			continue
		}
		job.MatchScore = score
		job.PostedDate = time.Now().UTC().AddDate(0, 0, -(i*3 + 2))
		matched = append(matched, job)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if query.Count > 0 && query.Count < len(matched) {
		matched = matched[:query.Count]
	}
	return matched, nil
}

func matchScore(required []string, userSkills map[string]struct{}) float64 {
	if len(required) == 0 {
		return 0
	}
	overlap := 0
	for _, skill := range required {
		if _, ok := userSkills[strings.ToLower(skill)]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(required))
}

func mockJob(n int, job Job) Job {
	job.ID = fmt.Sprintf("mock-%d", n)
	job.JobURL = fmt.Sprintf("https://example.com/jobs/mock-%d", n)
	job.SalaryCurrency = "USD"
	job.JobType = "Full-time"
	job.Source = "Mock API"
	return job
}

var mockCatalog = []Job{
	mockJob(1, Job{
		Title:           "Senior Software Engineer",
		Company:         "TechCorp Inc.",
		Location:        "San Francisco, CA",
		Description:     "We are looking for a Senior Software Engineer to join our team. You will be responsible for developing and maintaining our core platform using modern technologies.",
		SalaryMin:       120000,
		SalaryMax:       180000,
		ExperienceLevel: "Senior",
		RemoteWork:      true,
		Requirements:    []string{"5+ years experience", "Strong problem-solving skills", "Team leadership experience"},
		SkillsRequired:  []string{"Python", "JavaScript", "React", "Node.js", "AWS", "Docker"},
	}),
	mockJob(2, Job{
		Title:           "Full Stack Developer",
		Company:         "StartupXYZ",
		Location:        "New York, NY",
		Description:     "Join our fast-growing startup as a Full Stack Developer. You'll work on both frontend and backend development, building scalable web applications.",
		SalaryMin:       80000,
		SalaryMax:       120000,
		ExperienceLevel: "Mid",
		RemoteWork:      false,
		Requirements:    []string{"3+ years experience", "Full-stack development", "Agile methodology"},
		SkillsRequired:  []string{"React", "Node.js", "MongoDB", "Express", "TypeScript", "Git"},
	}),
	mockJob(3, Job{
		Title:           "Data Scientist",
		Company:         "DataCorp",
		Location:        "Seattle, WA",
		Description:     "We're seeking a Data Scientist to analyze large datasets and build machine learning models. You'll work with our data team to extract insights and drive business decisions.",
		SalaryMin:       100000,
		SalaryMax:       150000,
		ExperienceLevel: "Mid",
		RemoteWork:      true,
		Requirements:    []string{"PhD or Master's in related field", "Machine learning experience", "Statistical analysis"},
		SkillsRequired:  []string{"Python", "R", "TensorFlow", "Pandas", "NumPy", "Scikit-learn", "SQL"},
	}),
	mockJob(4, Job{
		Title:           "DevOps Engineer",
		Company:         "CloudTech",
		Location:        "Austin, TX",
		Description:     "Looking for a DevOps Engineer to manage our cloud infrastructure and CI/CD pipelines. You'll work with our development team to ensure smooth deployments.",
		SalaryMin:       90000,
		SalaryMax:       140000,
		ExperienceLevel: "Mid",
		RemoteWork:      true,
		Requirements:    []string{"Cloud platform experience", "CI/CD knowledge", "Infrastructure as Code"},
		SkillsRequired:  []string{"AWS", "Docker", "Kubernetes", "Terraform", "Jenkins", "Linux", "Bash"},
	}),
	mockJob(5, Job{
		Title:           "Frontend Developer",
		Company:         "DesignStudio",
		Location:        "Los Angeles, CA",
		Description:     "We need a creative Frontend Developer to build beautiful, responsive user interfaces. You'll work closely with our design team to bring mockups to life.",
		SalaryMin:       70000,
		SalaryMax:       110000,
		ExperienceLevel: "Junior",
		RemoteWork:      false,
		Requirements:    []string{"2+ years experience", "UI/UX understanding", "Responsive design"},
		SkillsRequired:  []string{"React", "Vue.js", "CSS", "Sass", "Webpack", "Figma", "JavaScript"},
	}),
	mockJob(6, Job{
		Title:           "Backend Developer",
		Company:         "APICorp",
		Location:        "Boston, MA",
		Description:     "Join our backend team to build robust APIs and microservices. You'll work with large-scale systems and ensure high performance and reliability.",
		SalaryMin:       85000,
		SalaryMax:       130000,
		ExperienceLevel: "Mid",
		RemoteWork:      true,
		Requirements:    []string{"API development experience", "Database design", "System architecture"},
		SkillsRequired:  []string{"Python", "Django", "PostgreSQL", "Redis", "REST API", "GraphQL", "Docker"},
	}),
	mockJob(7, Job{
		Title:           "Machine Learning Engineer",
		Company:         "AI Solutions",
		Location:        "Denver, CO",
		Description:     "We're looking for a Machine Learning Engineer to develop and deploy ML models in production. You'll work on cutting-edge AI projects and help scale our ML infrastructure.",
		SalaryMin:       110000,
		SalaryMax:       160000,
		ExperienceLevel: "Senior",
		RemoteWork:      true,
		Requirements:    []string{"ML model deployment", "Production experience", "MLOps knowledge"},
		SkillsRequired:  []string{"Python", "TensorFlow", "PyTorch", "Kubernetes", "MLflow", "Docker", "AWS"},
	}),
	mockJob(8, Job{
		Title:           "Mobile App Developer",
		Company:         "MobileFirst",
		Location:        "Chicago, IL",
		Description:     "Develop native and cross-platform mobile applications. You'll work on both iOS and Android apps, ensuring great user experience across platforms.",
		SalaryMin:       75000,
		SalaryMax:       115000,
		ExperienceLevel: "Mid",
		RemoteWork:      false,
		Requirements:    []string{"Mobile development experience", "Cross-platform knowledge", "App Store deployment"},
		SkillsRequired:  []string{"React Native", "Flutter", "Swift", "Kotlin", "iOS", "Android", "Firebase"},
	}),
}
