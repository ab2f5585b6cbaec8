package media

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/logger"
	"aineoo/internal/observability"
	"aineoo/internal/visual"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultVoice      = "Lily"
	DefaultResolution = "480p"
	minAvatarFrames   = 81
	maxAvatarFrames   = 129
	maxSpokenRunes    = 300

	defaultAvatarPrompt = "A professional person talking naturally in front of camera, neutral background, well lit, business casual"
)

// AvatarGenerator renders a talking-head clip from a portrait and a script.
type AvatarGenerator struct {
	fal       *FalClient
	endpoint  string
	imageRef  string
	voice     string
	numFrames int
}

// NewAvatarGenerator creates an avatar generator from configuration.
func NewAvatarGenerator(fal *FalClient, cfg config.Media) *AvatarGenerator {
	voice := cfg.AvatarVoice
	if voice == "" {
		voice = DefaultVoice
	}
	return &AvatarGenerator{
		fal:       fal,
		endpoint:  cfg.AvatarEndpoint,
		imageRef:  cfg.AvatarImageURL,
		voice:     voice,
		numFrames: ClampFrames(cfg.AvatarFrames),
	}
}

// ClampFrames keeps n within the 81-129 range the avatar model accepts.
func ClampFrames(n int) int {
	return min(max(n, minAvatarFrames), maxAvatarFrames)
}

// Available reports whether fal.ai is configured.
func (g *AvatarGenerator) Available() bool {
	return g != nil && g.fal.Available() && g.endpoint != ""
}

type avatarArguments struct {
	ImageURL   string `json:"image_url"`
	TextInput  string `json:"text_input"`
	Voice      string `json:"voice"`
	Prompt     string `json:"prompt"`
	Resolution string `json:"resolution"`
	NumFrames  int    `json:"num_frames"`
}

// Generate speaks text over the portrait at imageRef (a URL or a local file;
// empty uses the configured portrait) and writes {saveDir}/avatar/avatar.mp4.
func (g *AvatarGenerator) Generate(ctx context.Context, text, imageRef, saveDir string) (string, error) {
	path, err := g.generate(ctx, text, imageRef, saveDir)
	observability.MediaGenerations.WithLabelValues(string(apperr.MediaAvatar), observability.Outcome(err)).Inc()
	if err != nil {
		return "", &apperr.MediaError{Kind: apperr.MediaAvatar, Err: err}
	}
	return path, nil
}

func (g *AvatarGenerator) generate(ctx context.Context, text, imageRef, saveDir string) (string, error) {
	if !g.Available() {
		return "", errors.New("avatar generation requires FAL_KEY")
	}
	text = headRunes(strings.TrimSpace(text), maxSpokenRunes)
	if text == "" {
		return "", errors.New("avatar script is empty")
	}

	imageURL, err := g.resolveImage(ctx, imageRef)
	if err != nil {
		return "", err
	}

	start := time.Now()
	var out VideoOutput
	args := avatarArguments{
		ImageURL:   imageURL,
		TextInput:  text,
		Voice:      g.voice,
		Prompt:     defaultAvatarPrompt,
		Resolution: DefaultResolution,
		NumFrames:  g.numFrames,
	}
	if err := g.fal.Run(ctx, g.endpoint, args, &out); err != nil {
		return "", err
	}
	if out.Video.URL == "" {
		return "", errors.New("result contained no video url")
	}

	path := filepath.Join(saveDir, "avatar", "avatar.mp4")
	if err := visual.Download(ctx, g.fal.downloader, out.Video.URL, path); err != nil {
		return "", err
	}
	logger.Info("Avatar video generated", "file", path, "voice", g.voice, "duration", time.Since(start).Round(time.Second).String())
	return path, nil
}

// resolveImage uploads local portraits to fal.ai storage; anything else is
// treated as a URL.
func (g *AvatarGenerator) resolveImage(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		ref = g.imageRef
	}
	if ref == "" {
		return "", errors.New("no avatar portrait configured (set AVATAR_IMAGE_URL or --avatar-image)")
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return g.fal.UploadFile(ctx, ref)
	}
	return ref, nil
}
