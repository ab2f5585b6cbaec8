package llm

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/logger"
	"aineoo/internal/observability"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	DefaultMaxRetries      = 2
	DefaultInitialInterval = 2 * time.Second
	DefaultMaxInterval     = 30 * time.Second
	DefaultTimeout         = 90 * time.Second
)

// ErrUnavailable is returned by a gateway with no provider configured.
var ErrUnavailable = errors.New("llm gateway unavailable")

// Options tunes retry and rate limiting. Zero values select defaults.
type Options struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	RateLimit       float64 // requests per second, 0 disables limiting
	Tracker         *observability.PostHogClient
}

// Gateway is the single entry point for chat completions. A nil Gateway is
// valid and reports itself unavailable.
type Gateway struct {
	provider   Provider
	limiter    *rate.Limiter
	maxRetries int
	initial    time.Duration
	max        time.Duration
	tracker    *observability.PostHogClient
}

// NewGateway wraps provider with retry and rate limiting.
func NewGateway(provider Provider, opts Options) *Gateway {
	g := &Gateway{
		provider:   provider,
		maxRetries: opts.MaxRetries,
		initial:    opts.InitialInterval,
		max:        opts.MaxInterval,
		tracker:    opts.Tracker,
	}
	if g.maxRetries <= 0 {
		g.maxRetries = DefaultMaxRetries
	}
	if g.initial <= 0 {
		g.initial = DefaultInitialInterval
	}
	if g.max <= 0 {
		g.max = DefaultMaxInterval
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return g
}

// NewFromConfig builds the gateway for the configured provider. It returns
// nil without error when no key is configured or the LLM is disabled.
func NewFromConfig(ctx context.Context, cfg *config.Config, tracker *observability.PostHogClient) (*Gateway, error) {
	if cfg == nil || !cfg.LLMAvailable() {
		return nil, nil
	}

	timeout := config.Duration(cfg.LLM.Timeout, DefaultTimeout)
	opts := Options{RateLimit: cfg.LLM.RateLimit, Tracker: tracker}

	switch strings.ToLower(cfg.LLM.Provider) {
	case "", "deepseek", "openai":
		ds := cfg.LLM.DeepSeek
		p := NewOpenAIProvider("deepseek", ds.APIKey, ds.BaseURL, ds.Model, timeout)
		return NewGateway(p, opts), nil
	case "gemini":
		gm := cfg.LLM.Gemini
		p, err := NewGeminiProvider(ctx, gm.APIKey, gm.Model, "", timeout)
		if err != nil {
			return nil, err
		}
		return NewGateway(p, opts), nil
	default:
		return nil, &apperr.ConfigError{Problems: []string{fmt.Sprintf("llm.provider: unknown provider %q", cfg.LLM.Provider)}}
	}
}

// Available reports whether completions can be attempted.
func (g *Gateway) Available() bool {
	return g != nil && g.provider != nil
}

// Provider returns the provider name, or "none".
func (g *Gateway) Provider() string {
	if !g.Available() {
		return "none"
	}
	return g.provider.Name()
}

// Chat runs a completion, retrying transient failures with exponential
// backoff. Client errors (4xx) are returned immediately.
func (g *Gateway) Chat(ctx context.Context, req Request) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}

	name := g.provider.Name()
	start := time.Now()
	attempt := 0

	var content string
	op := func() error {
		attempt++
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}
		out, err := g.provider.Complete(ctx, req)
		if err != nil {
			if isClientError(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		content = out
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("LLM request failed, retrying", "provider", name, "attempt", attempt, "wait", wait.String(), "error", err.Error())
	}

	err := backoff.RetryNotify(op, g.policy(ctx), notify)

	elapsed := time.Since(start)
	observability.LLMRequests.WithLabelValues(name, observability.Outcome(err)).Inc()
	observability.LLMRequestDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	_ = g.tracker.TrackLLMCall(ctx, name, g.provider.Model(), elapsed.Milliseconds(), err == nil)

	if err != nil {
		logger.Error("LLM request failed", err, "provider", name, "attempts", attempt)
		return "", err
	}
	logger.Debug("LLM request completed", "provider", name, "attempts", attempt, "duration", elapsed.String())
	return content, nil
}

// ChatJSON runs Chat and decodes the reply into a JSON object.
func (g *Gateway) ChatJSON(ctx context.Context, req Request) (map[string]any, error) {
	req.JSON = true
	content, err := g.Chat(ctx, req)
	if err != nil {
		return nil, &apperr.LLMResponseError{Reason: "request failed", Err: err}
	}
	obj, err := ExtractJSONBlock(content)
	if err != nil {
		return nil, &apperr.LLMResponseError{Reason: "invalid JSON", Err: err}
	}
	return obj, nil
}

func (g *Gateway) policy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.initial
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = g.max
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(g.maxRetries)), ctx)
}

func isClientError(err error) bool {
	status := openAIStatus(err)
	if status == 0 {
		status = geminiStatus(err)
	}
	return status >= 400 && status < 500
}
