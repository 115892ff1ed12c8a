package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements llm.Client using the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new Gemini client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (c *Client) ParseResume(ctx context.Context, resumeText string) (llm.ParsedResume, error) {
	raw, err := c.generateJSON(ctx, llm.BuildParseResumePrompt(resumeText), objectJSON)
	if err != nil {
		return llm.ParsedResume{}, err
	}
	var parsed llm.ParsedResume
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return llm.ParsedResume{}, fmt.Errorf("gemini output parse: %w", err)
	}
	return parsed, nil
}

func (c *Client) GenerateQuestions(ctx context.Context, input llm.QuestionInput) ([]llm.Question, error) {
	raw, err := c.generateJSON(ctx, llm.BuildGenerateQuestionsPrompt(input), arrayJSON)
	if err != nil {
		return nil, err
	}
	var questions []llm.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("gemini output parse: %w", err)
	}
	if len(questions) == 0 {
		return nil, errors.New("gemini returned no questions")
	}
	return questions, nil
}

func (c *Client) EvaluateAnswer(ctx context.Context, input llm.AnswerInput) (llm.Evaluation, error) {
	raw, err := c.generateJSON(ctx, llm.BuildEvaluateAnswerPrompt(input), objectJSON)
	if err != nil {
		return llm.Evaluation{}, err
	}
	var eval llm.Evaluation
	if err := json.Unmarshal(raw, &eval); err != nil {
		return llm.Evaluation{}, fmt.Errorf("gemini output parse: %w", err)
	}
	return eval, nil
}

func (c *Client) FinalFeedback(ctx context.Context, performance []llm.QuestionPerformance) (llm.Feedback, error) {
	raw, err := c.generateJSON(ctx, llm.BuildFinalFeedbackPrompt(performance), objectJSON)
	if err != nil {
		return llm.Feedback{}, err
	}
	var feedback llm.Feedback
	if err := json.Unmarshal(raw, &feedback); err != nil {
		return llm.Feedback{}, fmt.Errorf("gemini output parse: %w", err)
	}
	return feedback, nil
}

type jsonShape int

const (
	objectJSON jsonShape = iota
	arrayJSON
)

func (c *Client) generateJSON(ctx context.Context, prompt string, shape jsonShape) (json.RawMessage, error) {
	raw, err := c.generateOnce(ctx, prompt)
	if err != nil {
		return nil, err
	}
	extracted, ok := extractJSON(raw, shape)
	if ok {
		return extracted, nil
	}

	// One repair round: models occasionally wrap JSON in prose or fences.
	fixPrompt := "The following output should have been valid JSON but is not. Return only the corrected JSON with the same content:\n\n" + raw
	raw, err = c.generateOnce(ctx, fixPrompt)
	if err != nil {
		return nil, err
	}
	extracted, ok = extractJSON(raw, shape)
	if !ok {
		return nil, fmt.Errorf("invalid JSON from Gemini")
	}
	return extracted, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	temp := float32(0)
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:      &temp,
			ResponseMimeType: "application/json",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("gemini request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	logUsage(c.model, parsed.UsageMetadata)
	return text, nil
}

// extractJSON pulls the first JSON object or array out of model output that may
// carry surrounding prose or markdown fences.
func extractJSON(text string, shape jsonShape) (json.RawMessage, bool) {
	openTok, closeTok := "{", "}"
	if shape == arrayJSON {
		openTok, closeTok = "[", "]"
	}
	start := strings.Index(text, openTok)
	end := strings.LastIndex(text, closeTok)
	if start == -1 || end == -1 || end < start {
		return nil, false
	}
	candidate := json.RawMessage(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}
	return candidate, true
}

func logUsage(model string, usage *struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d candidate_tokens=%d total_tokens=%d",
		model, usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)
}

var _ llm.Client = (*Client)(nil)
