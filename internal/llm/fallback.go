package llm

import (
	"context"
	"strings"
)

// FallbackClient produces deterministic canned output so the product flow keeps
// working when no provider is configured or a provider call fails.
type FallbackClient struct{}

func (FallbackClient) ParseResume(ctx context.Context, resumeText string) (ParsedResume, error) {
	if err := ctx.Err(); err != nil {
		return ParsedResume{}, err
	}
	lower := strings.ToLower(resumeText)
	parsed := ParsedResume{
		Skills:          []string{"Python", "JavaScript", "React", "Node.js", "SQL", "Git", "AWS"},
		ExperienceYears: 4.5,
		EducationLevel:  "Bachelor's",
		Summary:         "Software engineer with full-stack experience.",
	}
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "staff"):
		parsed.ExperienceYears = 7.5
		parsed.EducationLevel = "Master's"
		parsed.Skills = append(parsed.Skills, "Docker", "Kubernetes", "PostgreSQL")
	case strings.Contains(lower, "junior") || strings.Contains(lower, "intern"):
		parsed.ExperienceYears = 2.0
		parsed.Skills = []string{"Python", "JavaScript", "HTML", "CSS", "SQL", "Git"}
	}
	return parsed, nil
}

func (FallbackClient) GenerateQuestions(ctx context.Context, input QuestionInput) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	questions := []Question{
		{
			Question:         "Tell me about yourself and your relevant experience.",
			Type:             "behavioral",
			Difficulty:       "easy",
			ExpectedKeywords: []string{"experience", "skills", "background"},
			TimeLimitMinutes: 3,
		},
		{
			Question:         "What interests you about this role?",
			Type:             "company",
			Difficulty:       "easy",
			ExpectedKeywords: []string{"passion", "growth", "challenge"},
			TimeLimitMinutes: 2,
		},
		{
			Question:         "Describe a challenging project you worked on.",
			Type:             "behavioral",
			Difficulty:       "medium",
			ExpectedKeywords: []string{"problem", "solution", "outcome"},
			TimeLimitMinutes: 5,
		},
	}
	if input.Count > 0 && input.Count < len(questions) {
		questions = questions[:input.Count]
	}
	return questions, nil
}

func (FallbackClient) EvaluateAnswer(ctx context.Context, input AnswerInput) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	_ = input
	return Evaluation{
		TechnicalScore:     7.0,
		CommunicationScore: 7.0,
		RelevanceScore:     7.0,
		OverallScore:       7.0,
		Feedback:           "Good answer with room for improvement. Consider providing more specific examples.",
		Strengths:          []string{"Clear communication", "Relevant experience"},
		Weaknesses:         []string{"Could be more specific", "Missing technical details"},
		Suggestions:        []string{"Provide specific examples", "Include metrics and results"},
	}, nil
}

func (FallbackClient) FinalFeedback(ctx context.Context, performance []QuestionPerformance) (Feedback, error) {
	if err := ctx.Err(); err != nil {
		return Feedback{}, err
	}
	_ = performance
	return Feedback{
		OverallPerformance:     "Good performance with areas for improvement",
		TechnicalStrengths:     []string{"Problem-solving", "Technical knowledge"},
		CommunicationStrengths: []string{"Clear articulation", "Good structure"},
		ImprovementAreas:       []string{"More specific examples", "Technical depth"},
		Recommendations:        []string{"Practice technical questions", "Prepare STAR examples"},
		NextSteps:              []string{"Continue learning", "Practice interviews"},
	}, nil
}

var _ Client = FallbackClient{}
