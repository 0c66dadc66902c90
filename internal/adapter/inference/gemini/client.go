// Package gemini is an inference client backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

const (
	probePrompt    = "Say OK"
	probeMaxTokens = 5
)

// Config holds connection settings. BaseURL is optional.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// Client sends completions through the genai SDK.
type Client struct {
	client       *genai.Client
	model        string
	timeout      time.Duration
	probeTimeout time.Duration
	log          *slog.Logger
}

// New creates a Client.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 15 * time.Second
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		client:       client,
		model:        cfg.Model,
		timeout:      cfg.Timeout,
		probeTimeout: cfg.ProbeTimeout,
		log:          logger.With("adapter", "gemini"),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete runs a single completion. Every failure is a *domain.UpstreamError.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Sampling.Temperature)),
		TopP:            genai.Ptr(float32(req.Sampling.TopP)),
		MaxOutputTokens: int32(req.Sampling.MaxTokens),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	start := time.Now()
	out, err := c.generate(ctx, req.UserPrompt, gc)
	if err != nil {
		c.log.ErrorContext(ctx, "inference failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	c.log.DebugContext(ctx, "inference completed",
		slog.Duration("duration", time.Since(start)),
		slog.Int("result_len", len(out)),
	)
	return out, nil
}

// Ping sends a minimal prompt to confirm reachability and credentials.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	_, err := c.generate(ctx, probePrompt, &genai.GenerateContentConfig{MaxOutputTokens: probeMaxTokens})
	return err
}

func (c *Client) generate(ctx context.Context, prompt string, gc *genai.GenerateContentConfig) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), gc)
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{Kind: domain.InferenceRejected, StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &domain.UpstreamError{Kind: domain.InferenceRejected, StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message}
	}

	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out"
	}
	return &domain.UpstreamError{Kind: domain.InferenceUnavailable, Message: msg}
}
