package llm

import (
	"context"
	"strings"
	"testing"
)

func TestFallbackParseResumeSeniorHeuristic(t *testing.T) {
	client := FallbackClient{}

	parsed, err := client.ParseResume(context.Background(), "Senior Software Engineer with platform experience")
	if err != nil {
		t.Fatalf("ParseResume: %v", err)
	}
	if parsed.ExperienceYears != 7.5 {
		t.Fatalf("expected 7.5 years for senior resume, got %v", parsed.ExperienceYears)
	}
	if parsed.EducationLevel != "Master's" {
		t.Fatalf("unexpected education level: %q", parsed.EducationLevel)
	}
}

func TestFallbackGenerateQuestionsHonorsCount(t *testing.T) {
	client := FallbackClient{}

	questions, err := client.GenerateQuestions(context.Background(), QuestionInput{Count: 2})
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if q.Question == "" || q.Type == "" {
			t.Fatalf("incomplete question: %+v", q)
		}
	}
}

func TestBuildGenerateQuestionsPromptIncludesInputs(t *testing.T) {
	prompt := BuildGenerateQuestionsPrompt(QuestionInput{
		JobTitle:     "Data Engineer",
		Company:      "DataCorp",
		ResumeSkills: []string{"Python", "SQL"},
		Count:        5,
	})
	for _, want := range []string{"Data Engineer", "DataCorp", "Python, SQL", "Generate 5 interview questions"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildEvaluateAnswerPromptDefaultsKeywords(t *testing.T) {
	prompt := BuildEvaluateAnswerPrompt(AnswerInput{Question: "Q", Answer: "A", QuestionType: "technical"})
	if !strings.Contains(prompt, "Not specified") {
		t.Fatal("expected default keyword marker")
	}
}
