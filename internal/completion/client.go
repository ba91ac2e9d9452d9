package completion

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
	"github.com/AngelCh415/dayparting-go/internal/metrics"
	"github.com/AngelCh415/dayparting-go/internal/utils"
)

const (
	DefaultModel        = "gpt-4"
	DefaultMaxRetries   = 5
	DefaultInitialDelay = time.Second
	DefaultMultiplier   = 2
)

var ErrMissingCredential = errors.New("missing API credential")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
	HTTPClient   HTTPClient
	// Sleep overrides the backoff wait, mostly for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

type Client struct {
	api     *openai.Client
	cfg     Config
	backoff utils.Backoff
	log     *slog.Logger
	m       *metrics.Collectors
}

// New builds a client. A zero MaxRetries means DefaultMaxRetries; use a
// negative value to disable retries.
func New(cfg Config, log *slog.Logger, m *metrics.Collectors) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = DefaultMultiplier
	}
	if log == nil {
		log = slog.Default()
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	b := utils.Backoff{
		MaxRetries:   cfg.MaxRetries,
		InitialDelay: cfg.InitialDelay,
		Multiplier:   cfg.Multiplier,
		IsRetryable:  func(err error) bool { return apperr.Is(err, apperr.KindRateLimited) },
		Sleep:        cfg.Sleep,
	}
	c := &Client{api: openai.NewClientWithConfig(oc), cfg: cfg, log: log.With(slog.String("component", "completion")), m: m}
	b.OnRetry = c.onRetry
	c.backoff = b
	return c
}

// Complete sends prompt as a single user message and returns the first
// choice's content. Errors are *apperr.Error of kind ExhaustedRetries,
// Upstream or Canceled.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := c.complete(ctx, prompt)
	c.m.ObserveCompletion(err, time.Since(start))
	return text, err
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		c.log.Error("completion credential not configured")
		return "", apperr.New(apperr.KindUpstream, "failed to analyze data: missing API credential", ErrMissingCredential)
	}

	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var text string
	err := c.backoff.Do(ctx, func(attempt int) error {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return c.classify(ctx, err)
		}
		if len(resp.Choices) == 0 {
			return apperr.New(apperr.KindUpstream, "failed to analyze data: empty completion response", nil)
		}
		text = resp.Choices[0].Message.Content
		return nil
	})

	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, utils.ErrRetriesExhausted):
		c.log.Error("completion retries exhausted", slog.Int("max_retries", c.cfg.MaxRetries))
		return "", apperr.WithStatus(apperr.KindExhaustedRetries, "max retries reached: failed to analyze data", http.StatusTooManyRequests, err)
	case apperr.Is(err, apperr.KindCanceled):
		return "", err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// ctx ended during a backoff wait
		return "", apperr.New(apperr.KindCanceled, "analysis canceled", err)
	}
	return "", err
}

func (c *Client) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return apperr.New(apperr.KindCanceled, "analysis canceled", err)
	}
	status := statusOf(err)
	if status == http.StatusTooManyRequests {
		return apperr.WithStatus(apperr.KindRateLimited, "rate limited", status, err)
	}
	c.log.Error("completion call failed", slog.Int("status", status), slog.String("err", err.Error()))
	return apperr.WithStatus(apperr.KindUpstream, "failed to analyze data", status, err)
}

func (c *Client) onRetry(retry int, delay time.Duration, err error) {
	c.log.Warn("rate limited, retrying",
		slog.Int("retry", retry),
		slog.Int("max_retries", c.cfg.MaxRetries),
		slog.Duration("delay", delay))
	c.m.ObserveRetry()
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
