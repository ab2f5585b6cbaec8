package observability

import (
	"aineoo/internal/config"
	"aineoo/internal/logger"
	"context"
	"fmt"

	"github.com/posthog/posthog-go"
)

// PostHogClient wraps the PostHog SDK for product analytics
type PostHogClient struct {
	client     posthog.Client
	enabled    bool
	distinctID string
}

// EventProperties contains properties for an event
type EventProperties map[string]interface{}

// NewPostHogClient creates a new PostHog analytics client. A disabled
// configuration yields a client whose methods are no-ops.
func NewPostHogClient(cfg config.PostHogConfig, siteName string) (*PostHogClient, error) {
	if !cfg.Enabled {
		return &PostHogClient{}, nil
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("PostHog enabled but missing API key")
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{
		Endpoint: cfg.Host,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create PostHog client: %w", err)
	}

	distinctID := siteName
	if distinctID == "" {
		distinctID = "aineoo"
	}

	return &PostHogClient{
		client:     client,
		enabled:    true,
		distinctID: distinctID,
	}, nil
}

// IsEnabled returns whether PostHog tracking is enabled
func (p *PostHogClient) IsEnabled() bool {
	return p != nil && p.enabled
}

// Capture sends an event to PostHog
func (p *PostHogClient) Capture(ctx context.Context, event string, properties EventProperties) error {
	if !p.IsEnabled() {
		return nil
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}

	if err := p.client.Enqueue(posthog.Capture{
		DistinctId: p.distinctID,
		Event:      event,
		Properties: props,
	}); err != nil {
		logger.Debug("PostHog enqueue failed", "event", event, "error", err.Error())
		return err
	}
	return nil
}

// TrackLLMCall tracks chat completions for cost and latency monitoring
func (p *PostHogClient) TrackLLMCall(ctx context.Context, provider, model string, latencyMs int64, success bool) error {
	return p.Capture(ctx, "llm_call", EventProperties{
		"provider":   provider,
		"model":      model,
		"latency_ms": latencyMs,
		"success":    success,
	})
}

// TrackPublish tracks the outcome of a publish pipeline run
func (p *PostHogClient) TrackPublish(ctx context.Context, runID, slug string, score int, dryRun bool, contentSource string) error {
	return p.Capture(ctx, "article_published", EventProperties{
		"run_id":         runID,
		"slug":           slug,
		"quality_score":  score,
		"dry_run":        dryRun,
		"content_source": contentSource,
	})
}

// TrackError tracks when a pipeline stage fails
func (p *PostHogClient) TrackError(ctx context.Context, stage string, err error) error {
	return p.Capture(ctx, "error_occurred", EventProperties{
		"stage":         stage,
		"error_message": err.Error(),
	})
}

// Shutdown flushes pending events and closes the client
func (p *PostHogClient) Shutdown() error {
	if !p.IsEnabled() {
		return nil
	}
	return p.client.Close()
}
