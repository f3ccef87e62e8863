package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apperrors "github.com/johnquangdev/minutesgen/errors"
	pkgvalidator "github.com/johnquangdev/minutesgen/pkg/validator"
)

// Config holds application configuration
type Config struct {
	LLM        LLMConfig
	Confluence ConfluenceConfig
	Pipeline   PipelineConfig
}

// LLMConfig holds completion service configuration
type LLMConfig struct {
	APIKey        string        `envconfig:"OPENAI_API_KEY"`
	BaseURL       string        `envconfig:"OPENAI_API_URL" default:"https://api.openai.com" validate:"url"`
	PrimaryModel  string        `envconfig:"MINUTES_PRIMARY_MODEL" default:"gpt-4"`
	FallbackModel string        `envconfig:"MINUTES_FALLBACK_MODEL" default:"gpt-3.5-turbo"`
	Timeout       time.Duration `envconfig:"MINUTES_LLM_TIMEOUT" default:"30s"`
}

// ConfluenceConfig holds the remote document store configuration.
// Publishing is enabled only when every required field is present.
type ConfluenceConfig struct {
	BaseURL      string        `envconfig:"CONFLUENCE_URL" validate:"omitempty,url"`
	Username     string        `envconfig:"CONFLUENCE_USERNAME"`
	APIToken     string        `envconfig:"CONFLUENCE_TOKEN"`
	SpaceKey     string        `envconfig:"CONFLUENCE_SPACE"`
	ParentPageID string        `envconfig:"CONFLUENCE_PARENT_ID"`
	Timeout      time.Duration `envconfig:"CONFLUENCE_TIMEOUT" default:"30s"`
	MaxAttempts  int           `envconfig:"CONFLUENCE_MAX_ATTEMPTS" default:"1" validate:"min=1"`
}

// PipelineConfig holds pipeline tuning knobs
type PipelineConfig struct {
	TruncateLimit int    `envconfig:"MINUTES_TRUNCATE_LIMIT" default:"3000" validate:"min=1"`
	OutputDir     string `envconfig:"MINUTES_OUTPUT_DIR"`
	MeetingDate   string `envconfig:"MINUTES_DATE" validate:"omitempty,standupdate"`
	TitlePrefix   string `envconfig:"MINUTES_TITLE_PREFIX" default:"Stand-up Minutes - "`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, apperrors.ErrInvalidConfig(err)
	}

	return &cfg, nil
}

// Validate validates the configuration. Called after CLI flags have been
// merged on top of the environment values.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return apperrors.ErrMissingCredential("OPENAI_API_KEY")
	}
	if err := pkgvalidator.New().Validate(c); err != nil {
		return apperrors.ErrInvalidConfig(err)
	}
	return nil
}

// PublishEnabled reports whether enough Confluence credentials are present
// to publish. Partial credentials fall back to local-only output.
func (c *ConfluenceConfig) PublishEnabled() bool {
	return c.BaseURL != "" && c.Username != "" && c.APIToken != "" && c.SpaceKey != ""
}
