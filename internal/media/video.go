package media

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/llm"
	"aineoo/internal/logger"
	"aineoo/internal/observability"
	"aineoo/internal/visual"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const videoPromptSystem = `You are a professional short video creative director specializing in AI text-to-video generation.
Based on the article content provided by the user, generate a precise English prompt for AI video generation.

## CRITICAL RULES (must follow strictly)
- Output ONLY in English. ABSOLUTELY NO Chinese characters, Japanese characters, or any CJK characters
- Maximum 120 words, every word must add visual value
- Describe ONE coherent visual scene for a 5-10 second seamless loop video

## CONTENT RULES
- Focus on ABSTRACT, NON-HUMAN visuals: geometric shapes, data streams, glowing nodes, tech interfaces
- NEVER include: any text, words, letters, numbers, symbols, watermarks, logos on screen
- NEVER include: human faces, human bodies, hands, recognizable people or characters
- NEVER include: specific brand logos, product screenshots, UI mockups with text

## STYLE
- Modern tech aesthetic: glassmorphism, holographic, neon accents on dark backgrounds
- Consistent color palette: deep blue/purple base with cyan/teal/orange accents
- End the prompt with: "cinematic quality, 4K resolution, smooth 60fps motion, professional color grading"

## OUTPUT
Output ONLY the prompt text. No explanation, no prefix, no quotes, no markdown.`

// DefaultAspectRatio is the vertical format used for article clips.
const DefaultAspectRatio = "9:16"

// Chatter is the plain-text side of the LLM gateway.
type Chatter interface {
	Available() bool
	Chat(ctx context.Context, req llm.Request) (string, error)
}

// VideoGenerator turns an article into a short looping clip.
type VideoGenerator struct {
	fal      *FalClient
	llm      Chatter
	endpoint string
}

// NewVideoGenerator wires the queue client and the prompt writer.
func NewVideoGenerator(fal *FalClient, chat Chatter, cfg config.Media) *VideoGenerator {
	return &VideoGenerator{fal: fal, llm: chat, endpoint: cfg.VideoEndpoint}
}

// Available reports whether both fal.ai and the LLM are usable.
func (g *VideoGenerator) Available() bool {
	return g != nil && g.fal.Available() && g.llm != nil && g.llm.Available() && g.endpoint != ""
}

type videoArguments struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	Duration    string `json:"duration"`
}

// Generate writes {saveDir}/video.mp4 for the article and returns its path.
func (g *VideoGenerator) Generate(ctx context.Context, title, body, saveDir, aspectRatio string) (string, error) {
	path, err := g.generate(ctx, title, body, saveDir, aspectRatio)
	observability.MediaGenerations.WithLabelValues(string(apperr.MediaVideo), observability.Outcome(err)).Inc()
	if err != nil {
		return "", &apperr.MediaError{Kind: apperr.MediaVideo, Err: err}
	}
	return path, nil
}

func (g *VideoGenerator) generate(ctx context.Context, title, body, saveDir, aspectRatio string) (string, error) {
	if !g.Available() {
		return "", errors.New("video generation requires FAL_KEY and an LLM")
	}
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}

	prompt, err := g.Prompt(ctx, title, body)
	if err != nil {
		return "", err
	}

	start := time.Now()
	var out VideoOutput
	args := videoArguments{Prompt: prompt, AspectRatio: aspectRatio, Duration: "5"}
	if err := g.fal.Run(ctx, g.endpoint, args, &out); err != nil {
		return "", err
	}
	if out.Video.URL == "" {
		return "", errors.New("result contained no video url")
	}

	path := filepath.Join(saveDir, "video.mp4")
	if err := visual.Download(ctx, g.fal.downloader, out.Video.URL, path); err != nil {
		return "", err
	}
	logger.Info("Video generated", "file", path, "duration", time.Since(start).Round(time.Second).String())
	return path, nil
}

// Prompt asks the LLM for an English scene description of the article.
func (g *VideoGenerator) Prompt(ctx context.Context, title, body string) (string, error) {
	user := fmt.Sprintf("文案标题：%s\n\n文案正文（前500字）：\n%s", title, headRunes(body, 500))
	raw, err := g.llm.Chat(ctx, llm.Request{System: videoPromptSystem, User: user, Temperature: 0.7})
	if err != nil {
		return "", fmt.Errorf("failed to write video prompt: %w", err)
	}
	prompt := SanitizePrompt(raw)
	if prompt == "" {
		return "", errors.New("video prompt is empty after cleanup")
	}
	logger.Debug("Video prompt", "prompt", headRunes(prompt, 120))
	return prompt, nil
}

var (
	cjkPattern        = regexp.MustCompile(`[\x{4e00}-\x{9fff}\x{3400}-\x{4dbf}\x{3000}-\x{303f}\x{ff00}-\x{ffef}]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizePrompt removes CJK characters and wrapping quotes and collapses
// whitespace so the prompt is plain English.
func SanitizePrompt(prompt string) string {
	cleaned := cjkPattern.ReplaceAllString(strings.TrimSpace(prompt), "")
	cleaned = strings.Trim(cleaned, "\"'`")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
}

func headRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
