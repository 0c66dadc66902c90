// Package workersai is an inference client for hosted model-run endpoints
// of the form {base}/accounts/{account}/ai/run/{model}.
package workersai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

const (
	probePrompt    = "Say OK"
	probeMaxTokens = 5
	maxErrorBody   = 200
)

// Config holds connection settings.
type Config struct {
	BaseURL      string
	AccountID    string
	APIToken     string
	Model        string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// Client sends chat-style completions to the model-run endpoint.
type Client struct {
	http         *resty.Client
	url          string
	model        string
	timeout      time.Duration
	probeTimeout time.Duration
	log          *slog.Logger
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runRequest struct {
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
}

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type runResponse struct {
	Success bool         `json:"success"`
	Errors  []apiMessage `json:"errors"`
	Result  struct {
		Response string `json:"response"`
	} `json:"result"`
}

// New creates a Client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 15 * time.Second
	}

	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.AccountID, strings.TrimLeft(cfg.Model, "/"))

	hc := resty.New().
		SetAuthToken(cfg.APIToken).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:         hc,
		url:          url,
		model:        cfg.Model,
		timeout:      cfg.Timeout,
		probeTimeout: cfg.ProbeTimeout,
		log:          logger.With("adapter", "workersai"),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete runs a single completion. Every failure is a *domain.UpstreamError.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := runRequest{
		Messages: []message{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   req.Sampling.MaxTokens,
		Temperature: &req.Sampling.Temperature,
		TopP:        &req.Sampling.TopP,
	}

	start := time.Now()
	out, err := c.run(ctx, body)
	if err != nil {
		c.log.ErrorContext(ctx, "inference failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	c.log.DebugContext(ctx, "inference completed",
		slog.Duration("duration", time.Since(start)),
		slog.Int("prompt_len", len(req.UserPrompt)),
		slog.Int("result_len", len(out)),
	)
	return out, nil
}

// Ping sends a minimal prompt with a tiny token budget to confirm the
// endpoint is reachable and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	_, err := c.run(ctx, runRequest{
		Messages:  []message{{Role: "user", Content: probePrompt}},
		MaxTokens: probeMaxTokens,
	})
	return err
}

func (c *Client) run(ctx context.Context, body runRequest) (string, error) {
	var out runResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post(c.url)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		return "", &domain.UpstreamError{Kind: domain.InferenceUnavailable, Message: msg}
	}

	if resp.StatusCode() != 200 {
		return "", &domain.UpstreamError{
			Kind:       domain.InferenceRejected,
			StatusCode: resp.StatusCode(),
			Message:    truncate(resp.String(), maxErrorBody),
		}
	}

	if !out.Success {
		return "", &domain.UpstreamError{
			Kind:       domain.InferenceRejected,
			StatusCode: resp.StatusCode(),
			Message:    describe(out.Errors),
		}
	}

	return out.Result.Response, nil
}

func describe(errs []apiMessage) string {
	if len(errs) == 0 {
		return "backend reported failure"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%d: %s", e.Code, e.Message))
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
