package minutes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutesgen/internal/adapter/transcript"
	"github.com/johnquangdev/minutesgen/internal/domain/entities"
)

// Publisher is the remote document store collaborator
type Publisher interface {
	Publish(ctx context.Context, title, body string) (*entities.RemotePage, error)
}

// LocalSaver persists the rendered document and raw record pair
type LocalSaver interface {
	Save(stem string, html string, m *entities.MeetingMinutes) (string, string, error)
}

// Service orchestrates one pipeline run: extraction, rendering, the
// best-effort suggestion appendix, publishing, and local output. Each run is
// independent; no state crosses invocations.
type Service struct {
	extractor   *Extractor
	renderer    *Renderer
	advisor     *Advisor
	publisher   Publisher  // nil when Confluence is not configured
	saver       LocalSaver // nil when no output dir is configured
	titlePrefix string
	now         func() time.Time
	logger      *zap.Logger
}

// NewService wires the pipeline together
func NewService(
	extractor *Extractor,
	renderer *Renderer,
	advisor *Advisor,
	publisher Publisher,
	saver LocalSaver,
	titlePrefix string,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractor:   extractor,
		renderer:    renderer,
		advisor:     advisor,
		publisher:   publisher,
		saver:       saver,
		titlePrefix: titlePrefix,
		now:         time.Now,
		logger:      logger,
	}
}

// ProcessAndPublish runs the pipeline over one transcript. An empty date
// defaults to today. Publish happens before local save, so a publish failure
// yields no local artifact; that ordering matches the upstream behavior and
// is deliberate.
func (s *Service) ProcessAndPublish(ctx context.Context, text string, date string) (*entities.PublishResult, error) {
	logger := s.logger.With(zap.String("run_id", uuid.NewString()))

	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	logger.Info("🤖 Processing transcript with AI",
		zap.Int("transcript_length", len(text)),
		zap.String("date", date),
	)
	m, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(m, date)
	if err != nil {
		return nil, err
	}

	if suggestion, ok := s.advisor.Suggest(ctx, m); ok {
		html = s.renderer.AppendSuggestion(html, suggestion)
	}

	result := &entities.PublishResult{
		Minutes: m,
		HTML:    html,
	}

	if s.publisher != nil {
		title := s.titlePrefix + date
		page, err := s.publisher.Publish(ctx, title, html)
		if err != nil {
			return nil, err
		}
		result.PageID = page.ID
		result.PageLink = page.Link
	}

	return result, nil
}

// ProcessFile reads a transcript file, runs the pipeline, and writes the
// local HTML+JSON pair when an output destination is configured.
func (s *Service) ProcessFile(ctx context.Context, inputPath string, date string) (*entities.PublishResult, error) {
	text, err := transcript.Read(inputPath)
	if err != nil {
		return nil, err
	}

	result, err := s.ProcessAndPublish(ctx, text, date)
	if err != nil {
		return nil, err
	}

	if s.saver != nil {
		htmlPath, jsonPath, err := s.saver.Save(transcript.Stem(inputPath), result.HTML, result.Minutes)
		if err != nil {
			return nil, err
		}
		result.LocalHTMLPath = htmlPath
		result.LocalJSONPath = jsonPath
	}

	return result, nil
}
