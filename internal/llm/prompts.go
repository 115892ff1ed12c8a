package llm

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/parse_resume.txt
	parseResumePrompt string
	//go:embed prompts/generate_questions.txt
	generateQuestionsPrompt string
	//go:embed prompts/evaluate_answer.txt
	evaluateAnswerPrompt string
	//go:embed prompts/final_feedback.txt
	finalFeedbackPrompt string
)

const maxResumePromptChars = 12000

// BuildParseResumePrompt renders the resume extraction prompt.
func BuildParseResumePrompt(resumeText string) string {
	return fmt.Sprintf(parseResumePrompt, truncate(resumeText, maxResumePromptChars))
}

// BuildGenerateQuestionsPrompt renders the question generation prompt.
func BuildGenerateQuestionsPrompt(input QuestionInput) string {
	count := input.Count
	if count <= 0 {
		count = 10
	}
	return fmt.Sprintf(generateQuestionsPrompt,
		count,
		input.JobTitle,
		input.Company,
		truncate(input.JobDescription, maxResumePromptChars),
		strings.Join(input.Requirements, ", "),
		strings.Join(input.ResumeSkills, ", "),
	)
}

// BuildEvaluateAnswerPrompt renders the answer evaluation prompt.
func BuildEvaluateAnswerPrompt(input AnswerInput) string {
	keywords := "Not specified"
	if len(input.ExpectedKeywords) > 0 {
		keywords = strings.Join(input.ExpectedKeywords, ", ")
	}
	return fmt.Sprintf(evaluateAnswerPrompt,
		input.Question,
		input.QuestionType,
		truncate(input.Answer, maxResumePromptChars),
		keywords,
	)
}

// BuildFinalFeedbackPrompt renders the final feedback prompt.
func BuildFinalFeedbackPrompt(performance []QuestionPerformance) string {
	data, err := json.Marshal(performance)
	if err != nil {
		data = []byte("[]")
	}
	return fmt.Sprintf(finalFeedbackPrompt, string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
