package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LLM.BaseURL != "https://api.openai.com" {
		t.Fatalf("unexpected base URL %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.PrimaryModel != "gpt-4" || cfg.LLM.FallbackModel != "gpt-3.5-turbo" {
		t.Fatalf("unexpected models %q/%q", cfg.LLM.PrimaryModel, cfg.LLM.FallbackModel)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.LLM.Timeout)
	}
	if cfg.Pipeline.TruncateLimit != 3000 {
		t.Fatalf("unexpected truncate limit %d", cfg.Pipeline.TruncateLimit)
	}
	if cfg.Pipeline.TitlePrefix != "Stand-up Minutes - " {
		t.Fatalf("unexpected title prefix %q", cfg.Pipeline.TitlePrefix)
	}
	if cfg.Confluence.MaxAttempts != 1 {
		t.Fatalf("unexpected max attempts %d", cfg.Confluence.MaxAttempts)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestValidate_RejectsBadDate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	cfg.Pipeline.MeetingDate = "January 15th"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-ISO date")
	}

	cfg.Pipeline.MeetingDate = "2024-01-15"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
}

func TestPublishEnabled(t *testing.T) {
	c := ConfluenceConfig{
		BaseURL:  "https://wiki.example.com",
		Username: "bot@example.com",
		APIToken: "token",
		SpaceKey: "ENG",
	}
	if !c.PublishEnabled() {
		t.Fatal("full credentials must enable publishing")
	}
	c.SpaceKey = ""
	if c.PublishEnabled() {
		t.Fatal("partial credentials must not enable publishing")
	}
}
