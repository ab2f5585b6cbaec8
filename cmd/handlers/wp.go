package handlers

import (
	"aineoo/internal/apperr"
	"aineoo/internal/config"
	"aineoo/internal/pipeline"
	"aineoo/internal/wordpress"
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// publishFlags are shared by wp and generate
type publishFlags struct {
	promptFlags
	focusKeyword  string
	title         string
	slug          string
	categories    string
	tags          string
	status        string
	dryRun        bool
	yes           bool
	minQuality    int
	strictQuality bool
	verify        bool
	relatedLimit  int
	noLLM         bool
	maxImages     int
	video         bool
	videoRatio    string
	avatar        bool
	avatarImage   string
}

func (f *publishFlags) registerContent(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "full generation prompt")
	cmd.Flags().StringVar(&f.topic, "topic", "", "topic formatted into publish.prompt_template")
	cmd.Flags().StringVar(&f.brief, "brief", "", "Markdown brief file used as the prompt")
	cmd.Flags().StringVar(&f.focusKeyword, "focus-keyword", "", "SEO focus keyword (default: derived from the prompt)")
	cmd.Flags().StringVar(&f.title, "title", "", "override the generated title")
	cmd.Flags().StringVar(&f.slug, "slug", "", "override the generated slug")
	cmd.Flags().BoolVar(&f.noLLM, "no-llm", false, "use the rule-based article only")
	cmd.Flags().IntVar(&f.maxImages, "max-images", 0, "featured plus content images to generate (default from config)")
	cmd.Flags().IntVar(&f.minQuality, "min-quality", -1, "quality threshold 0-100, 0 disables it (-1 uses config: 75)")
	cmd.Flags().BoolVar(&f.strictQuality, "strict-quality", false, "abort when the score is below --min-quality")
}

func (f *publishFlags) options(cfg *config.Config) (pipeline.Options, error) {
	prompt, err := resolvePrompt(f.promptFlags, cfg.Publish.PromptTemplate)
	if err != nil {
		return pipeline.Options{}, err
	}
	if f.minQuality < -1 || f.minQuality > 100 {
		return pipeline.Options{}, fmt.Errorf("--min-quality must be within 0-100: %w", apperr.ErrInvalidInput)
	}
	var minQuality *int
	if f.minQuality >= 0 {
		minQuality = &f.minQuality
	}

	categories := config.SplitCSV(f.categories)
	if len(categories) == 0 {
		categories = cfg.Publish.DefaultCategories
	}
	tags := config.SplitCSV(f.tags)
	if len(tags) == 0 {
		tags = cfg.Publish.DefaultTags
	}

	return pipeline.Options{
		Prompt:        prompt,
		FocusKeyword:  f.focusKeyword,
		Title:         f.title,
		Slug:          f.slug,
		Categories:    categories,
		Tags:          tags,
		Status:        f.status,
		DryRun:        f.dryRun,
		MinQuality:    minQuality,
		StrictQuality: f.strictQuality,
		Verify:        f.verify,
		RelatedLimit:  f.relatedLimit,
		UseLLM:        !f.noLLM,
		MaxImages:     f.maxImages,
		Video:         f.video,
		VideoRatio:    f.videoRatio,
		Avatar:        f.avatar,
		AvatarImage:   f.avatarImage,
	}, nil
}

// NewWPCmd creates the WordPress publish command
func NewWPCmd() *cobra.Command {
	f := &publishFlags{}

	cmd := &cobra.Command{
		Use:   "wp",
		Short: "Generate an article and publish it to WordPress",
		Long: `Generate an article, illustrate it, render SEO HTML and publish it to
WordPress with Rank Math meta.

Steps:
  1. Generate the article (rule-based, merged with the LLM when available)
  2. Generate and upload the featured and section images
  3. Optionally generate a short video and a talking-avatar clip
  4. Resolve categories and tags
  5. Render HTML with TOC, FAQ and JSON-LD, then score quality
  6. Publish, or write preview.html with --dry-run
  7. Optionally verify the live page

Examples:
  aineoo wp --topic "企业如何落地AI客服" --categories AI --tags 智能客服,AI客服
  aineoo wp --brief briefs/ai-kefu.md --status draft --verify
  aineoo wp --prompt "..." --dry-run --video --avatar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWP(cmd, f)
		},
	}

	f.registerContent(cmd)
	cmd.Flags().StringVar(&f.categories, "categories", "", "comma-separated category names (default from config)")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tag names (default from config)")
	cmd.Flags().StringVar(&f.status, "status", wordpress.StatusPublish, "post status: publish or draft")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "write preview.html instead of creating the post")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "fetch the live page after publishing and check it")
	cmd.Flags().IntVar(&f.relatedLimit, "related-limit", 0, "related posts to link (default from config: 3)")
	cmd.Flags().BoolVar(&f.video, "video", false, "generate a short video for the article")
	cmd.Flags().StringVar(&f.videoRatio, "video-ratio", "16:9", "video aspect ratio")
	cmd.Flags().BoolVar(&f.avatar, "avatar", false, "generate a talking-avatar clip")
	cmd.Flags().StringVar(&f.avatarImage, "avatar-image", "", "avatar portrait (local file or URL, default from config)")

	return cmd
}

func runWP(cmd *cobra.Command, f *publishFlags) error {
	cfg := appConfig
	if err := cfg.Validate(config.Requirements{WordPress: true}); err != nil {
		return err
	}

	opts, err := f.options(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.DryRun && !f.yes {
		ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Publish to %s as %s?", cfg.WordPress.BaseURL, opts.Status))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	rt, err := buildRuntime(cmd.Context(), cfg, wiring{host: true, images: true, media: opts.Video || opts.Avatar, out: out})
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintf(out, "🚀 Publishing to %s (LLM: %s)\n\n", cfg.WordPress.BaseURL, rt.gateway.Provider())
	res, err := rt.publisher.Publish(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printRunReport(out, res)
	return nil
}

// confirm asks a yes/no question on in. Anything but y/yes declines.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
