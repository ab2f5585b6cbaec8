package handlers

import (
	"aineoo/internal/article"
	"aineoo/internal/config"
	"aineoo/internal/llm"
	"aineoo/internal/logger"
	"aineoo/internal/media"
	"aineoo/internal/observability"
	"aineoo/internal/pipeline"
	"aineoo/internal/store"
	"aineoo/internal/visual"
	"aineoo/internal/wordpress"
	"context"
	"fmt"
	"io"
	"time"
)

// wiring selects which external collaborators a command needs
type wiring struct {
	host   bool // WordPress host for uploads, terms and posts
	images bool
	media  bool // fal.ai video and avatar
	out    io.Writer
}

// runtime holds the collaborators built for one command invocation
type runtime struct {
	publisher *pipeline.Publisher
	gateway   *llm.Gateway
	tracker   *observability.PostHogClient
	store     *store.Store
}

func (r *runtime) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			logger.Warn("Failed to close run history", "error", err.Error())
		}
	}
	if err := r.tracker.Shutdown(); err != nil {
		logger.Warn("Failed to flush analytics", "error", err.Error())
	}
}

// buildRuntime wires the publisher from configuration. Optional services
// without credentials are left out and the pipeline skips their stages.
func buildRuntime(ctx context.Context, cfg *config.Config, w wiring) (*runtime, error) {
	rt := &runtime{}

	tracker, err := observability.NewPostHogClient(cfg.Analytics.PostHog, cfg.WordPress.SiteName)
	if err != nil {
		logger.Warn("Analytics disabled", "error", err.Error())
		tracker = nil
	}
	rt.tracker = tracker

	gateway, err := llm.NewFromConfig(ctx, cfg, tracker)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	rt.gateway = gateway

	pcfg := &pipeline.Config{
		OutputDir:        cfg.Publish.OutputDir,
		SiteName:         cfg.WordPress.SiteName,
		MaxContentImages: cfg.Publish.MaxContentImages,
		MinQuality:       cfg.Publish.MinQuality,
		RelatedLimit:     cfg.Publish.RelatedLimit,
	}

	b := pipeline.NewBuilder().
		WithGenerator(article.NewGenerator(gateway)).
		WithConfig(pcfg).
		WithTracker(tracker)
	if w.out != nil {
		b.WithOutput(w.out)
	}

	if w.images {
		if images := visual.NewClient(cfg.Images); images.Available() {
			b.WithImages(images)
		} else {
			logger.Info("Image generation not configured (set IMAGE_API_KEY)")
		}
	}

	if w.media {
		fal := media.NewFalClient(cfg.Media)
		b.WithVideo(media.NewVideoGenerator(fal, gateway, cfg.Media))
		b.WithAvatar(media.NewAvatarGenerator(fal, cfg.Media))
	}

	if w.host {
		wp := newWordPressClient(cfg)
		b.WithHost(wp).WithVerifier(wp)
	}

	if cfg.Store.Path != "" {
		st, err := store.NewStore(cfg.Store.Path)
		if err != nil {
			logger.Warn("Run history disabled", "path", cfg.Store.Path, "error", err.Error())
		} else {
			rt.store = st
			b.WithRecorder(st)
		}
	}

	publisher, err := b.Build()
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.publisher = publisher
	return rt, nil
}

func newWordPressClient(cfg *config.Config) *wordpress.Client {
	return wordpress.NewClient(
		cfg.WordPress.BaseURL,
		cfg.WordPress.User,
		cfg.WordPress.AppPassword,
		config.Duration(cfg.Publish.RequestTimeout, 40*time.Second),
	)
}
