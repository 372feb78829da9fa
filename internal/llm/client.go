// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package llm is a minimal client for OpenAI-compatible chat completions.

The recommendation services send one system and one user message and expect
a bare JSON document back. Complete returns the first choice's text;
ExtractJSON strips the Markdown fences some models wrap around it.

API Reference: https://platform.openai.com/docs/api-reference/chat
*/
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horizon/internal/breaker"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/metrics"
)

// Defaults.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 20 * time.Second
)

var (
	// ErrMissingAPIKey is returned without a request when no key is set.
	ErrMissingAPIKey = errors.New("llm: api key not configured")
	// ErrEmptyResponse is returned when the completion has no text.
	ErrEmptyResponse = errors.New("llm: empty completion")
)

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Prompt is a single-turn chat request.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls the chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	cb         *breaker.Breaker
}

// New creates a client. Empty fields take the defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb:         breaker.New("llm", breaker.Settings{}),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// BreakerState reports the upstream circuit breaker state.
func (c *Client) BreakerState() string {
	return c.cb.State()
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends p and returns the trimmed text of the first choice.
func (c *Client) Complete(ctx context.Context, p Prompt) (string, error) {
	if !c.Enabled() {
		return "", ErrMissingAPIKey
	}
	return breaker.Call(c.cb, func() (string, error) {
		return c.complete(ctx, p)
	})
}

func (c *Client) complete(ctx context.Context, p Prompt) (content string, err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstream("llm", time.Since(start), err) }()

	body := chatRequest{
		Model:       c.model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
	if p.System != "" {
		body.Messages = append(body.Messages, message{Role: "system", Content: p.System})
	}
	body.Messages = append(body.Messages, message{Role: "user", Content: p.User})

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logging.Ctx(ctx).Debug().
			Int("status", resp.StatusCode).
			Str("body", logging.Truncate(string(raw), 200)).
			Msg("LLM request rejected")
		return "", fmt.Errorf("chat request returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content = strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// ExtractJSON returns the JSON document inside a completion, removing a
// surrounding ``` or ```json fence when present.
func ExtractJSON(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// StringList decodes a completion holding a JSON array of strings. Non-string
// elements and blanks are dropped and the rest trimmed. Anything that is not
// an array yields an empty list.
func StringList(content string) []string {
	var raw []any
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &raw); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
