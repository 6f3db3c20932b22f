// Package gateway is the single path for every language-model call. It
// retries rate-limited calls with exponential backoff and strips code fences
// from JSON responses.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsletter_digest/internal/pacing"
)

var (
	ErrRateLimited       = errors.New("rate limited")
	ErrMalformedResponse = errors.New("malformed model response")
)

// Provider is a language-model backend. Implementations wrap ErrRateLimited
// when the provider signals throttling.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryable
	outcomeFatal
)

type attemptResult struct {
	outcome outcome
	text    string
	err     error
}

type retryState struct {
	attempt int
	delay   time.Duration
}

func (s retryState) next() retryState {
	return retryState{attempt: s.attempt + 1, delay: s.delay * 2}
}

type Gateway struct {
	provider Provider
	cfg      Config
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *slog.Logger
}

func New(provider Provider, cfg Config, logger *slog.Logger) *Gateway {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Gateway{
		provider: provider,
		cfg:      cfg,
		sleep:    pacing.Sleep,
		logger:   logger.With("component", "gateway"),
	}
}

// Text sends prompt and returns the raw response text.
func (g *Gateway) Text(ctx context.Context, prompt string) (string, error) {
	state := retryState{delay: g.cfg.BaseDelay}

	for {
		res := g.attempt(ctx, prompt)

		switch res.outcome {
		case outcomeSuccess:
			return res.text, nil
		case outcomeFatal:
			return "", res.err
		}

		if state.attempt+1 >= g.cfg.MaxAttempts {
			return "", fmt.Errorf("giving up after %d attempts: %w", state.attempt+1, res.err)
		}

		g.logger.Warn("model rate limited, backing off",
			"attempt", state.attempt+1,
			"max_attempts", g.cfg.MaxAttempts,
			"backoff", state.delay,
		)

		if err := g.sleep(ctx, state.delay); err != nil {
			return "", err
		}
		state = state.next()
	}
}

// JSON sends prompt and decodes the fence-stripped response into out.
// Decoding failures wrap ErrMalformedResponse.
func (g *Gateway) JSON(ctx context.Context, prompt string, out any) error {
	text, err := g.Text(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(StripFence(text)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (g *Gateway) attempt(ctx context.Context, prompt string) attemptResult {
	text, err := g.provider.Generate(ctx, prompt)
	switch {
	case err == nil:
		return attemptResult{outcome: outcomeSuccess, text: text}
	case IsRateLimited(err):
		return attemptResult{outcome: outcomeRetryable, err: err}
	default:
		return attemptResult{outcome: outcomeFatal, err: err}
	}
}

// IsRateLimited reports whether err carries a rate-limit marker.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "resource_exhausted")
}

// StripFence removes a surrounding ``` or ```json fence.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
