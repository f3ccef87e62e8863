package minutes

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/johnquangdev/minutesgen/internal/domain/entities"
	"github.com/johnquangdev/minutesgen/pkg/ai"
	"github.com/johnquangdev/minutesgen/pkg/config"
)

type scriptedResponse struct {
	content string
	err     error
}

// scriptedLLM plays back canned completion responses in order and records
// every request it saw.
type scriptedLLM struct {
	responses []scriptedResponse
	calls     []ai.ChatRequest
}

func (s *scriptedLLM) Complete(_ context.Context, req ai.ChatRequest) (string, error) {
	s.calls = append(s.calls, req)
	if len(s.responses) == 0 {
		return "", errors.New("unexpected completion call")
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r.content, r.err
}

func newTestExtractor(llm Completer, truncateLimit int) *Extractor {
	return NewExtractor(llm,
		&config.LLMConfig{PrimaryModel: "gpt-4", FallbackModel: "gpt-3.5-turbo"},
		&config.PipelineConfig{TruncateLimit: truncateLimit},
		zap.NewNop(),
	)
}

const primaryJSON = `{
  "attendees": ["Ranjeet", "Hieu", "Swati"],
  "summary": "Daily stand-up covering pipeline work.",
  "individual_updates": [{"name": "Ranjeet", "yesterday": "Built the exporter", "today": "Testing", "blockers": "None"}],
  "action_items": [
    {"action": "Deploy model to staging", "assignee": "Hieu", "due_date": "2024-01-20", "priority": "High"},
    {"action": "Review pipeline PR", "assignee": "Swati"}
  ],
  "blockers": [],
  "decisions": ["Use Kubernetes for deployment"],
  "key_discussions": []
}`

func TestExtract_PrimarySuccess(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{{content: primaryJSON}}}
	e := newTestExtractor(llm, 3000)

	m, err := e.Extract(context.Background(), "transcript text")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(llm.calls) != 1 {
		t.Fatalf("expected a single completion call, got %d", len(llm.calls))
	}
	if llm.calls[0].Model != "gpt-4" {
		t.Fatalf("primary call used model %s", llm.calls[0].Model)
	}
	if len(m.Attendees) != 3 {
		t.Fatalf("expected 3 attendees got %d", len(m.Attendees))
	}
	if len(m.ActionItems) != 2 {
		t.Fatalf("expected 2 action items got %d", len(m.ActionItems))
	}
	// Optional fields absent in the response get the literal defaults.
	if m.ActionItems[1].DueDate != "TBD" || m.ActionItems[1].Priority != "Medium" {
		t.Fatalf("defaults not applied: %+v", m.ActionItems[1])
	}
}

func TestExtract_FallbackOnMalformedJSON(t *testing.T) {
	transcript := strings.Repeat("Someone said something important. ", 50)
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: "I'm sorry, here are the minutes in prose form..."},
		{content: `{"attendees":["Hieu"],"summary":"Short summary.","action_items":[],"blockers":["waiting on infra"]}`},
	}}
	e := newTestExtractor(llm, 100)

	m, err := e.Extract(context.Background(), transcript)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(llm.calls) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(llm.calls))
	}
	if llm.calls[1].Model != "gpt-3.5-turbo" {
		t.Fatalf("fallback call used model %s", llm.calls[1].Model)
	}
	// The simplified tier sees only the truncated transcript prefix.
	userPrompt := llm.calls[1].Messages[1].Content
	if !strings.Contains(userPrompt, transcript[:100]) {
		t.Fatal("fallback prompt missing truncated transcript prefix")
	}
	if strings.Contains(userPrompt, transcript) {
		t.Fatal("fallback prompt contains the full untruncated transcript")
	}

	if len(m.Attendees) != 1 || m.Attendees[0] != "Hieu" {
		t.Fatalf("unexpected attendees: %v", m.Attendees)
	}
	if len(m.IndividualUpdates) != 0 || len(m.Decisions) != 0 || len(m.KeyDiscussions) != 0 {
		t.Fatalf("four-field record should leave the other sequences empty: %+v", m)
	}
}

func TestExtract_SafeDefaultWhenBothTiersFail(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: "not json"},
		{err: errors.New("rate limited")},
	}}
	e := newTestExtractor(llm, 3000)

	m, err := e.Extract(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("terminal fallback must not fail: %v", err)
	}
	if !reflect.DeepEqual(m, entities.FallbackMinutes()) {
		t.Fatalf("expected the fixed safe-default record, got %+v", m)
	}
}

func TestExtract_SafeDefaultWhenFallbackParseFails(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{
		{content: "not json"},
		{content: "still not json"},
	}}
	e := newTestExtractor(llm, 3000)

	m, err := e.Extract(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("terminal fallback must not fail: %v", err)
	}
	if !reflect.DeepEqual(m, entities.FallbackMinutes()) {
		t.Fatalf("expected the fixed safe-default record, got %+v", m)
	}
}

func TestExtract_PrimaryTransportErrorPropagates(t *testing.T) {
	llm := &scriptedLLM{responses: []scriptedResponse{{err: errors.New("connection refused")}}}
	e := newTestExtractor(llm, 3000)

	if _, err := e.Extract(context.Background(), "transcript"); err == nil {
		t.Fatal("transport error on the primary tier must propagate")
	}
	if len(llm.calls) != 1 {
		t.Fatalf("transport error must not trigger the fallback tier, saw %d calls", len(llm.calls))
	}
}
