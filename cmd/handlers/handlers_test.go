package handlers

import (
	"aineoo/internal/apperr"
	"aineoo/internal/assets"
	"aineoo/internal/config"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestResolvePrompt(t *testing.T) {
	brief := filepath.Join(t.TempDir(), "brief.md")
	if err := os.WriteFile(brief, []byte("# 企业AI客服\n\n落地步骤与常见问题。\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name     string
		flags    promptFlags
		template string
		want     string
	}{
		{"prompt wins", promptFlags{prompt: "直接提示", topic: "主题"}, "主题：{theme}", "直接提示"},
		{"topic fills template", promptFlags{topic: "AI客服"}, "写一篇关于{theme}的文章", "写一篇关于AI客服的文章"},
		{"template without placeholder", promptFlags{topic: "AI客服"}, "no placeholder", strings.ReplaceAll(config.DefaultPromptTemplate, "{theme}", "AI客服")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePrompt(tt.flags, tt.template)
			if err != nil {
				t.Fatalf("resolvePrompt failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	got, err := resolvePrompt(promptFlags{brief: brief}, "")
	if err != nil {
		t.Fatalf("resolvePrompt with brief failed: %v", err)
	}
	if !strings.Contains(got, "企业AI客服") {
		t.Errorf("Expected brief text in prompt, got %q", got)
	}

	_, err = resolvePrompt(promptFlags{}, "")
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "": false} {
		got, err := confirm(strings.NewReader(input), &out, "Publish?")
		if err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if got != want {
			t.Errorf("Input %q: expected %v, got %v", input, want, got)
		}
	}
}

func TestPrintFailure_QualityHint(t *testing.T) {
	var out bytes.Buffer
	printFailure(&out, fmt.Errorf("publish failed: %w", &apperr.QualityError{Score: 40, MinScore: 75, Failed: []string{"faq"}}))
	if !strings.Contains(out.String(), "40 < 75") || !strings.Contains(out.String(), "--strict-quality") {
		t.Errorf("Expected score and hint, got:\n%s", out.String())
	}

	out.Reset()
	printFailure(&out, apperr.ErrInvalidInput)
	if strings.Contains(out.String(), "hint:") {
		t.Errorf("Unexpected hint for non-quality error:\n%s", out.String())
	}
}

func TestPublishOptions_MinQuality(t *testing.T) {
	cfg := testConfig(t)

	f := &publishFlags{promptFlags: promptFlags{prompt: "主题：AI客服"}, minQuality: -1}
	opts, err := f.options(cfg)
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	if opts.MinQuality != nil {
		t.Errorf("Expected config threshold, got %d", *opts.MinQuality)
	}

	f.minQuality = 0
	opts, err = f.options(cfg)
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	if opts.MinQuality == nil || *opts.MinQuality != 0 {
		t.Errorf("Expected explicit zero threshold, got %v", opts.MinQuality)
	}

	f.minQuality = 101
	if _, err := f.options(cfg); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		WordPress: config.WordPress{SiteName: "Example"},
		LLM:       config.LLM{Provider: "deepseek", Enabled: false},
		Publish: config.Publish{
			OutputDir:        filepath.Join(dir, "output"),
			MaxContentImages: 4,
			MinQuality:       75,
			RelatedLimit:     3,
			PromptTemplate:   config.DefaultPromptTemplate,
		},
		Store: config.Store{Path: filepath.Join(dir, "output", ".aineoo.db")},
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateScoreAndList(t *testing.T) {
	appConfig = testConfig(t)
	t.Cleanup(func() { appConfig = nil })

	out, err := run(t, NewGenerateCmd(), "--topic", "企业如何落地AI客服", "--slug", "ai-kefu")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Dry run complete") {
		t.Errorf("Expected dry-run report, got:\n%s", out)
	}

	dir := assets.Open(appConfig.Publish.OutputDir, "ai-kefu")
	if _, err := os.Stat(dir.PreviewPath()); err != nil {
		t.Errorf("Expected preview.html: %v", err)
	}
	rec, err := dir.LoadResult()
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}
	if !rec.DryRun || len(rec.CategoryIDs) != 0 {
		t.Errorf("Unexpected record: %+v", rec)
	}

	out, err = run(t, NewScoreCmd(), "ai-kefu")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if !strings.Contains(out, "QUALITY REPORT") {
		t.Errorf("Expected quality report, got:\n%s", out)
	}

	_, err = run(t, NewScoreCmd(), "ai-kefu", "--min-score", "101")
	var qe *apperr.QualityError
	if !errors.As(err, &qe) {
		t.Errorf("Expected QualityError, got %v", err)
	}

	out, err = run(t, NewLocalListCmd())
	if err != nil {
		t.Fatalf("local-list failed: %v", err)
	}
	if !strings.Contains(out, "ai-kefu") || !strings.Contains(out, "1 articles") {
		t.Errorf("Expected listing with ai-kefu, got:\n%s", out)
	}

	out, err = run(t, NewHistoryCmd())
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "dry-run") {
		t.Errorf("Expected recorded dry run, got:\n%s", out)
	}
}

func TestScore_Missing(t *testing.T) {
	appConfig = testConfig(t)
	t.Cleanup(func() { appConfig = nil })

	_, err := run(t, NewScoreCmd(), "nope")
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestWP_RequiresCredentials(t *testing.T) {
	appConfig = testConfig(t)
	t.Cleanup(func() { appConfig = nil })

	_, err := run(t, NewWPCmd(), "--topic", "AI客服", "--dry-run")
	var ce *apperr.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
	if len(ce.Problems) != 3 {
		t.Errorf("Expected 3 problems, got %v", ce.Problems)
	}
}
