package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/minutesgen/errors"
	"github.com/johnquangdev/minutesgen/internal/domain/entities"
	"github.com/johnquangdev/minutesgen/pkg/config"
)

// Client publishes documents to Confluence over its REST API using basic
// auth and optimistic versioning. It holds no page state across calls; the
// current version is always re-derived from a fresh lookup.
type Client struct {
	baseURL      string
	username     string
	apiToken     string
	spaceKey     string
	parentPageID string
	maxAttempts  int
	client       *http.Client
	logger       *zap.Logger
}

// NewClient creates a Confluence client from an explicit config object.
// MaxAttempts of 1 means single-shot requests; higher values add bounded
// exponential backoff around transient failures.
func NewClient(cfg *config.ConfluenceConfig, logger *zap.Logger) *Client {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		username:     cfg.Username,
		apiToken:     cfg.APIToken,
		spaceKey:     cfg.SpaceKey,
		parentPageID: cfg.ParentPageID,
		maxAttempts:  maxAttempts,
		client:       &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

// pageResponse is the subset of the Confluence content payload we consume
type pageResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version struct {
		Number int `json:"number"`
	} `json:"version"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

type searchResponse struct {
	Results []pageResponse `json:"results"`
}

func (c *Client) remotePage(p *pageResponse) *entities.RemotePage {
	return &entities.RemotePage{
		ID:      p.ID,
		Title:   p.Title,
		Version: p.Version.Number,
		Link:    c.baseURL + p.Links.WebUI,
	}
}

// FindPageByTitle looks a page up by exact title within the configured
// space. Zero or one result is expected; if the store returns several, the
// first one wins.
func (c *Client) FindPageByTitle(ctx context.Context, title string) (*entities.RemotePage, error) {
	endpoint := fmt.Sprintf("%s/rest/api/content?spaceKey=%s&title=%s&expand=version",
		c.baseURL, url.QueryEscape(c.spaceKey), url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}
	req.SetBasicAuth(c.username, c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrPublishFailed(resp.StatusCode, readBodyExcerpt(resp.Body))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}
	if len(sr.Results) == 0 {
		return nil, nil
	}
	return c.remotePage(&sr.Results[0]), nil
}

// CreatePage creates a new page wrapped in the generation banner.
// The create payload carries no version field; the store assigns version 1.
func (c *Client) CreatePage(ctx context.Context, title, body string) (*entities.RemotePage, error) {
	payload := map[string]interface{}{
		"type":  "page",
		"title": title,
		"space": map[string]string{"key": c.spaceKey},
		"body": map[string]interface{}{
			"storage": map[string]string{
				"value":          formatForConfluence(body),
				"representation": "storage",
			},
		},
		"metadata": map[string]interface{}{
			"labels": []map[string]string{
				{"name": "meeting-minutes"},
				{"name": "standup"},
				{"name": "ai-generated"},
			},
		},
	}
	if c.parentPageID != "" {
		payload["ancestors"] = []map[string]string{{"id": c.parentPageID}}
	}

	page, err := c.send(ctx, "POST", c.baseURL+"/rest/api/content", payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("✅ Created Confluence page",
		zap.String("page_id", page.ID),
		zap.String("link", page.Link),
	)
	return page, nil
}

// UpdatePage updates an existing page using existing.Version+1, the
// monotonically incrementing number the API requires.
func (c *Client) UpdatePage(ctx context.Context, existing *entities.RemotePage, title, body string) (*entities.RemotePage, error) {
	payload := map[string]interface{}{
		"version": map[string]int{"number": existing.Version + 1},
		"title":   title,
		"type":    "page",
		"body": map[string]interface{}{
			"storage": map[string]string{
				"value":          formatForConfluence(body),
				"representation": "storage",
			},
		},
	}

	page, err := c.send(ctx, "PUT", c.baseURL+"/rest/api/content/"+existing.ID, payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("✅ Updated Confluence page",
		zap.String("page_id", page.ID),
		zap.Int("version", existing.Version+1),
		zap.String("link", page.Link),
	)
	return page, nil
}

// Publish is the find-or-create/update driver. Confluence has no native
// upsert, so existence is decided by a title lookup. Concurrent runs against
// the same title can race between lookup and write; the store's version
// check is the only guard.
func (c *Client) Publish(ctx context.Context, title, body string) (*entities.RemotePage, error) {
	var page *entities.RemotePage

	op := func() error {
		existing, err := c.FindPageByTitle(ctx, title)
		if err != nil {
			return retryClass(err)
		}
		if existing != nil {
			page, err = c.UpdatePage(ctx, existing, title, body)
		} else {
			page, err = c.CreatePage(ctx, title, body)
		}
		if err != nil {
			return retryClass(err)
		}
		return nil
	}

	if c.maxAttempts <= 1 {
		if err := op(); err != nil {
			return nil, unwrapPermanent(err)
		}
		return page, nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxAttempts-1))
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, unwrapPermanent(err)
	}
	return page, nil
}

// send posts the payload and decodes the page identity from the response
func (c *Client) send(ctx context.Context, method, endpoint string, payload interface{}) (*entities.RemotePage, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("❌ Confluence request rejected",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.ErrPublishFailed(resp.StatusCode, readBodyExcerpt(resp.Body))
	}

	var p pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, apperrors.ErrPublishTransport(err)
	}
	return c.remotePage(&p), nil
}

// formatForConfluence wraps the document body in an informational banner
// macro disclosing automated generation.
func formatForConfluence(body string) string {
	return `<ac:structured-macro ac:name="info" ac:schema-version="1">
    <ac:parameter ac:name="title">AI-Generated Meeting Minutes</ac:parameter>
    <ac:rich-text-body>
        <p>This page was automatically generated from a meeting transcript using AI.</p>
    </ac:rich-text-body>
</ac:structured-macro>
` + body
}

// retryClass marks client-side HTTP errors permanent so backoff only
// retries transport failures and server errors.
func retryClass(err error) error {
	var app apperrors.AppError
	if stderrors.As(err, &app) {
		if s, found := app.Details["status"]; found && len(s) > 0 && s[0] == '4' {
			return backoff.Permanent(err)
		}
	}
	return err
}

func unwrapPermanent(err error) error {
	var perm *backoff.PermanentError
	if stderrors.As(err, &perm) {
		return perm.Err
	}
	return err
}

func readBodyExcerpt(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(b)
}
