package bootstrap

import (
	"testing"

	"github.com/hareesh3232/Mock-test-interview/internal/llm"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/config"
)

func TestBuildLLMProviderSelection(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	client, err := buildLLM(config.Config{LLMProvider: "placeholder", Env: "prod"})
	if err != nil {
		t.Fatalf("placeholder provider: %v", err)
	}
	if _, ok := client.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected PlaceholderClient, got %T", client)
	}

	client, err = buildLLM(config.Config{LLMProvider: "fallback", Env: "prod"})
	if err != nil {
		t.Fatalf("fallback provider: %v", err)
	}
	if _, ok := client.(llm.FallbackClient); !ok {
		t.Fatalf("expected FallbackClient, got %T", client)
	}

	// Without an API key, gemini degrades to canned outputs in dev only.
	client, err = buildLLM(config.Config{LLMProvider: "gemini", Env: "dev"})
	if err != nil {
		t.Fatalf("gemini without key in dev: %v", err)
	}
	if _, ok := client.(llm.FallbackClient); !ok {
		t.Fatalf("expected FallbackClient, got %T", client)
	}

	if _, err := buildLLM(config.Config{LLMProvider: "gemini", Env: "prod"}); err == nil {
		t.Fatal("expected error for gemini without key in prod")
	}

	if _, err := buildLLM(config.Config{LLMProvider: "bogus", Env: "dev"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
