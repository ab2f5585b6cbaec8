package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Builder helps construct a fully configured Publisher
type Builder struct {
	generator ArticleGenerator
	images    ImageGenerator
	video     VideoGenerator
	avatar    AvatarGenerator
	host      MediaHost
	verifier  PageVerifier
	recorder  RunRecorder
	tracker   EventTracker
	config    *Config
	out       io.Writer
	now       func() time.Time
}

// NewBuilder creates a new publisher builder with default settings
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
		out:    os.Stdout,
		now:    time.Now,
	}
}

// WithGenerator sets the article generator
func (b *Builder) WithGenerator(g ArticleGenerator) *Builder {
	b.generator = g
	return b
}

// WithImages sets the image generator
func (b *Builder) WithImages(g ImageGenerator) *Builder {
	b.images = g
	return b
}

// WithVideo sets the video generator
func (b *Builder) WithVideo(g VideoGenerator) *Builder {
	b.video = g
	return b
}

// WithAvatar sets the avatar generator
func (b *Builder) WithAvatar(g AvatarGenerator) *Builder {
	b.avatar = g
	return b
}

// WithHost sets the publishing target. Without one only dry runs work and
// the preview references local files.
func (b *Builder) WithHost(h MediaHost) *Builder {
	b.host = h
	return b
}

// WithVerifier sets the online page verifier
func (b *Builder) WithVerifier(v PageVerifier) *Builder {
	b.verifier = v
	return b
}

// WithRecorder sets the run history store
func (b *Builder) WithRecorder(r RunRecorder) *Builder {
	b.recorder = r
	return b
}

// WithTracker sets the analytics tracker
func (b *Builder) WithTracker(t EventTracker) *Builder {
	b.tracker = t
	return b
}

// WithConfig sets the publisher configuration
func (b *Builder) WithConfig(config *Config) *Builder {
	b.config = config
	return b
}

// WithOutput sets where step progress is printed
func (b *Builder) WithOutput(w io.Writer) *Builder {
	b.out = w
	return b
}

// WithClock overrides the time source used for timestamps
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build constructs a fully configured Publisher
func (b *Builder) Build() (*Publisher, error) {
	if b.generator == nil {
		return nil, fmt.Errorf("article generator is required")
	}
	if b.config == nil {
		b.config = DefaultConfig()
	}
	if b.config.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if b.out == nil {
		b.out = io.Discard
	}
	if b.now == nil {
		b.now = time.Now
	}

	return &Publisher{
		generator: b.generator,
		images:    b.images,
		video:     b.video,
		avatar:    b.avatar,
		host:      b.host,
		verifier:  b.verifier,
		recorder:  b.recorder,
		tracker:   b.tracker,
		config:    b.config,
		out:       b.out,
		now:       b.now,
	}, nil
}
