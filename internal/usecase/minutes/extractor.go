package minutes

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/minutesgen/errors"
	"github.com/johnquangdev/minutesgen/internal/domain/entities"
	"github.com/johnquangdev/minutesgen/pkg/ai"
	"github.com/johnquangdev/minutesgen/pkg/config"
)

// Completer is the completion service collaborator. It takes one request
// and returns generated text, which is not guaranteed to be well-formed JSON.
type Completer interface {
	Complete(ctx context.Context, req ai.ChatRequest) (string, error)
}

// Fixed context embedded in the primary prompt.
const (
	teamRoster   = "Ranjeet, Hieu, Varshith, Swati"
	teamProjects = "AI meeting pipeline, 5-FU clearance model, Kubernetes deployment"

	primarySystemPrompt = "You are an expert at analyzing meeting transcripts and creating clear, concise meeting minutes. Always return valid JSON."
	simpleSystemPrompt  = "Extract meeting information and return as JSON."
)

// Extractor turns an unstructured transcript into a MeetingMinutes record
// using a two-tier prompt strategy with a terminal safe-default fallback.
type Extractor struct {
	llm           Completer
	primaryModel  string
	fallbackModel string
	truncateLimit int
	logger        *zap.Logger
}

// NewExtractor constructs the extraction engine
func NewExtractor(llm Completer, llmCfg *config.LLMConfig, pipeCfg *config.PipelineConfig, logger *zap.Logger) *Extractor {
	return &Extractor{
		llm:           llm,
		primaryModel:  llmCfg.PrimaryModel,
		fallbackModel: llmCfg.FallbackModel,
		truncateLimit: pipeCfg.TruncateLimit,
		logger:        logger,
	}
}

// Extract runs the primary structured prompt. A malformed-JSON response
// falls back to the simplified tier; a transport error on the primary call
// propagates to the caller, which is the top-level failure boundary.
func (e *Extractor) Extract(ctx context.Context, transcript string) (*entities.MeetingMinutes, error) {
	content, err := e.llm.Complete(ctx, ai.ChatRequest{
		Model: e.primaryModel,
		Messages: []ai.ChatMessage{
			{Role: "system", Content: primarySystemPrompt},
			{Role: "user", Content: primaryPrompt(transcript)},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, apperrors.ErrExtractionFailed(err)
	}

	m, perr := decodeMinutes(content)
	if perr == nil {
		e.logger.Info("✅ Extracted structured minutes",
			zap.Int("attendees", len(m.Attendees)),
			zap.Int("action_items", len(m.ActionItems)),
		)
		return m, nil
	}

	e.logger.Warn("⚠️ Primary extraction returned malformed JSON, using simplified prompt",
		zap.Error(perr),
	)
	return e.simpleExtract(ctx, transcript), nil
}

// simpleExtract is the simplified tier: truncated transcript, minimal
// four-field schema, cheaper model. It never fails; any call or parse error
// yields the hardcoded safe-default record.
func (e *Extractor) simpleExtract(ctx context.Context, transcript string) *entities.MeetingMinutes {
	content, err := e.llm.Complete(ctx, ai.ChatRequest{
		Model: e.fallbackModel,
		Messages: []ai.ChatMessage{
			{Role: "system", Content: simpleSystemPrompt},
			{Role: "user", Content: simplePrompt(truncate(transcript, e.truncateLimit))},
		},
		Temperature: 0.5,
		MaxTokens:   1000,
	})
	if err == nil {
		if m, perr := decodeMinutes(content); perr == nil {
			e.logger.Info("✅ Simplified extraction succeeded")
			return m
		} else {
			err = perr
		}
	}

	e.logger.Error("❌ Simplified extraction failed, returning safe default", zap.Error(err))
	return entities.FallbackMinutes()
}

func primaryPrompt(transcript string) string {
	return fmt.Sprintf(`Analyze this meeting transcript and create structured meeting minutes.
Extract the following information and format it as JSON with these keys:
attendees (list of names), summary (string), individual_updates (list of
{name, yesterday, today, blockers}), action_items (list of {action, assignee,
due_date, priority}), blockers (list), decisions (list), key_discussions (list).

Analyze this engineering team standup transcript.
Focus on:
- Technical tasks and implementations
- Blockers and dependencies
- Testing and deployment status
- Infrastructure decisions
Team members: %s
Projects: %s
Extract updates, action items, and technical decisions.

Transcript: %s

Return ONLY valid JSON, no additional text.`, teamRoster, teamProjects, transcript)
}

func simplePrompt(transcript string) string {
	return fmt.Sprintf(`Create a simple meeting summary from this transcript:
%s

Format as JSON with: attendees (list), summary (string), action_items (list), blockers (list)`, transcript)
}
