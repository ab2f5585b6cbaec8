package pipeline

import (
	"aineoo/internal/article"
	"aineoo/internal/quality"
	"aineoo/internal/render"
	"aineoo/internal/store"
	"aineoo/internal/wordpress"
	"context"
)

// ArticleGenerator produces the structured article
type ArticleGenerator interface {
	// Generate never fails for a non-empty prompt; LLM problems fall back to rules
	Generate(ctx context.Context, req article.Request) (*article.Article, error)
}

// ImageGenerator renders one image to a local file (optional)
type ImageGenerator interface {
	Available() bool

	// Generate writes the image for prompt to savePath using seed
	Generate(ctx context.Context, prompt, savePath string, seed int64) (string, error)
}

// VideoGenerator renders a short clip for the article (optional)
type VideoGenerator interface {
	Available() bool

	// Generate writes {saveDir}/video.mp4 and returns its path
	Generate(ctx context.Context, title, body, saveDir, aspectRatio string) (string, error)
}

// AvatarGenerator renders a talking-avatar clip (optional)
type AvatarGenerator interface {
	Available() bool

	// Generate writes {saveDir}/avatar/avatar.mp4 and returns its path
	Generate(ctx context.Context, text, imageRef, saveDir string) (string, error)
}

// MediaHost is the publishing target
type MediaHost interface {
	// UploadMedia adds a local file to the media library
	UploadMedia(ctx context.Context, path, title, altText string) (*wordpress.Media, error)

	// EnsureTerm finds or creates a category or tag and returns its id
	EnsureTerm(ctx context.Context, taxonomy, name string) (int, error)

	// RelatedPosts returns published posts matching keyword
	RelatedPosts(ctx context.Context, keyword, excludeSlug string, limit int) ([]render.RelatedPost, error)

	// CreatePost creates the post
	CreatePost(ctx context.Context, payload wordpress.PostPayload) (*wordpress.CreatedPost, error)

	// CanonicalURL returns the public permalink for slug
	CanonicalURL(slug string) string
}

// PageVerifier checks the live page after publishing (optional)
type PageVerifier interface {
	VerifyPage(ctx context.Context, link string) quality.PageCheck
}

// RunRecorder persists run history (optional)
type RunRecorder interface {
	RecordRun(ctx context.Context, run store.Run) error
}

// EventTracker sends product analytics (optional)
type EventTracker interface {
	TrackPublish(ctx context.Context, runID, slug string, score int, dryRun bool, contentSource string) error
	TrackError(ctx context.Context, stage string, err error) error
}
