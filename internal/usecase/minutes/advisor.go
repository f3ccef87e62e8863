package minutes

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/minutesgen/internal/domain/entities"
	"github.com/johnquangdev/minutesgen/pkg/ai"
	"github.com/johnquangdev/minutesgen/pkg/config"
)

const advisorSystemPrompt = "You are a meeting efficiency expert."

// Advisor makes one best-effort completion call asking for meeting
// improvement suggestions. It can never fail the pipeline.
type Advisor struct {
	llm    Completer
	model  string
	logger *zap.Logger
}

// NewAdvisor constructs the suggestion advisor
func NewAdvisor(llm Completer, llmCfg *config.LLMConfig, logger *zap.Logger) *Advisor {
	return &Advisor{
		llm:    llm,
		model:  llmCfg.FallbackModel,
		logger: logger,
	}
}

// Suggest returns (text, true) when a suggestion was produced and
// ("", false) otherwise. The second value distinguishes "nothing produced"
// from an empty suggestion, so callers never mistake failure for content.
func (a *Advisor) Suggest(ctx context.Context, m *entities.MeetingMinutes) (string, bool) {
	prompt := fmt.Sprintf(`Based on these meeting minutes, suggest 2-3 specific improvements for future meetings:
- Number of action items: %d
- Number of blockers: %d
- Attendees: %d

Provide brief, actionable suggestions.`, len(m.ActionItems), len(m.Blockers), len(m.Attendees))

	content, err := a.llm.Complete(ctx, ai.ChatRequest{
		Model: a.model,
		Messages: []ai.ChatMessage{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		a.logger.Warn("⚠️ Suggestion call failed, continuing without appendix", zap.Error(err))
		return "", false
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", false
	}
	return content, true
}
