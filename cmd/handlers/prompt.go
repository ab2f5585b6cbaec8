package handlers

import (
	"aineoo/internal/apperr"
	"aineoo/internal/article"
	"aineoo/internal/config"
	"fmt"
	"strings"
)

// promptFlags are the three ways to describe an article on the command line
type promptFlags struct {
	prompt string
	topic  string
	brief  string
}

// resolvePrompt picks the generation prompt: --prompt wins, then --topic
// formatted into the template, then a Markdown brief file.
func resolvePrompt(f promptFlags, template string) (string, error) {
	if p := strings.TrimSpace(f.prompt); p != "" {
		return p, nil
	}
	if topic := strings.TrimSpace(f.topic); topic != "" {
		if !strings.Contains(template, "{theme}") {
			template = config.DefaultPromptTemplate
		}
		return strings.ReplaceAll(template, "{theme}", topic), nil
	}
	if f.brief != "" {
		return article.LoadBrief(f.brief)
	}
	return "", fmt.Errorf("one of --prompt, --topic or --brief is required: %w", apperr.ErrInvalidInput)
}
