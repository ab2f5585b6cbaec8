// Package pipeline sequences one article publish: generate, illustrate,
// resolve taxonomy, render, score, then either write a dry-run preview or
// create the WordPress post. Every external effect goes through an injected
// collaborator.
package pipeline

import (
	"aineoo/internal/apperr"
	"aineoo/internal/article"
	"aineoo/internal/assets"
	"aineoo/internal/logger"
	"aineoo/internal/observability"
	"aineoo/internal/quality"
	"aineoo/internal/render"
	"aineoo/internal/store"
	"aineoo/internal/wordpress"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxTagRunes       = 15
	robotsDirective   = "index,follow,max-snippet:-1,max-image-preview:large,max-video-preview:-1"
	defaultVideoRatio = "16:9"
)

// Publisher orchestrates the publish workflow
type Publisher struct {
	generator ArticleGenerator
	images    ImageGenerator
	video     VideoGenerator
	avatar    AvatarGenerator
	host      MediaHost
	verifier  PageVerifier
	recorder  RunRecorder
	tracker   EventTracker

	config *Config
	out    io.Writer
	now    func() time.Time
}

// Config holds publisher configuration
type Config struct {
	OutputDir        string
	SiteName         string
	MaxContentImages int
	MinQuality       int
	RelatedLimit     int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputDir:        "output",
		SiteName:         "Aineoo",
		MaxContentImages: 4,
		MinQuality:       quality.DefaultMinScore,
		RelatedLimit:     3,
	}
}

// Options configures one publish run
type Options struct {
	Prompt        string
	FocusKeyword  string
	Title         string
	Slug          string
	Categories    []string
	Tags          []string
	Status        string
	DryRun        bool
	MinQuality    *int // nil uses the configured threshold
	StrictQuality bool
	Verify        bool
	RelatedLimit  int
	UseLLM        bool
	MaxImages     int
	Video         bool
	VideoRatio    string
	Avatar        bool
	AvatarImage   string
}

// Result is what a run produced. The embedded record is written to
// result.json.
type Result struct {
	assets.Record
	Article *article.Article `json:"-"`
	HTML    string           `json:"-"`
}

// run carries state between stages.
type run struct {
	opts     Options
	id       string
	dir      assets.Dir
	slug     string
	article  *article.Article
	featured *article.MediaRef
	content  []article.MediaRef
	embedURL string
	warnings []string
	record   assets.Record
}

// Publish executes the full publish pipeline.
func (p *Publisher) Publish(ctx context.Context, opts Options) (*Result, error) {
	startTime := time.Now()
	if err := p.normalize(&opts); err != nil {
		return nil, err
	}
	r := &run{opts: opts, id: uuid.NewString()}

	res, stage, err := p.execute(ctx, r)
	observability.PublishRuns.WithLabelValues(observability.Outcome(err)).Inc()
	if err != nil {
		if p.tracker != nil {
			_ = p.tracker.TrackError(ctx, stage, err)
		}
		logger.Error("Publish failed", err, "run_id", r.id, "stage", stage, "slug", r.slug)
		return nil, err
	}

	if p.tracker != nil {
		score := 0
		if res.Quality != nil {
			score = res.Quality.Score
		}
		_ = p.tracker.TrackPublish(ctx, r.id, res.Slug, score, res.DryRun, res.ContentSource)
	}
	logger.Info("Publish finished", "run_id", r.id, "slug", res.Slug, "dry_run", res.DryRun, "duration", time.Since(startTime).Round(100*time.Millisecond).String())
	return res, nil
}

func (p *Publisher) normalize(opts *Options) error {
	if strings.TrimSpace(opts.Prompt) == "" {
		return fmt.Errorf("prompt is empty: %w", apperr.ErrInvalidInput)
	}
	switch opts.Status {
	case "":
		opts.Status = wordpress.StatusPublish
	case wordpress.StatusPublish, wordpress.StatusDraft:
	default:
		return fmt.Errorf("status must be publish or draft, got %q: %w", opts.Status, apperr.ErrInvalidInput)
	}
	if !opts.DryRun && p.host == nil {
		return fmt.Errorf("publishing requires a WordPress host; use a dry run: %w", apperr.ErrInvalidInput)
	}
	opts.Slug = strings.TrimSpace(opts.Slug)
	if opts.Slug != "" && !article.SlugPattern.MatchString(opts.Slug) {
		return fmt.Errorf("slug %q must be lowercase ASCII words joined by hyphens: %w", opts.Slug, apperr.ErrInvalidInput)
	}
	if opts.MinQuality == nil {
		minQuality := p.config.MinQuality
		opts.MinQuality = &minQuality
	}
	if opts.RelatedLimit < 0 {
		opts.RelatedLimit = 0
	} else if opts.RelatedLimit == 0 {
		opts.RelatedLimit = p.config.RelatedLimit
	}
	if opts.MaxImages <= 0 {
		opts.MaxImages = p.config.MaxContentImages
	}
	if opts.VideoRatio == "" {
		opts.VideoRatio = defaultVideoRatio
	}
	return nil
}

func (p *Publisher) execute(ctx context.Context, r *run) (*Result, string, error) {
	if err := p.generateArticle(ctx, r); err != nil {
		return nil, "generate_article", err
	}
	if err := p.generateImages(ctx, r); err != nil {
		return nil, "generate_images", err
	}
	if err := p.generateClips(ctx, r); err != nil {
		return nil, "generate_video", err
	}

	categoryIDs, tagIDs, err := p.resolveTaxonomy(ctx, r)
	if err != nil {
		return nil, "resolve_taxonomy", err
	}
	r.record.CategoryIDs = categoryIDs
	r.record.TagIDs = tagIDs

	html, report, err := p.renderAndScore(ctx, r)
	if err != nil {
		return nil, "render", err
	}

	gate := quality.Gate{MinScore: *r.opts.MinQuality, Strict: r.opts.StrictQuality}
	logger.Debug("Checking quality gate", "gate", gate.Name(), "blocking", gate.IsBlocking(), "score", report.Score, "min_score", gate.MinScore)
	if err := gate.Check(report); err != nil {
		fmt.Fprintf(p.out, "   ❌ Quality gate blocked publishing (%d < %d)\n\n", report.Score, gate.MinScore)
		return nil, "quality_gate", err
	}

	if r.opts.DryRun {
		if err := p.writePreview(r, html); err != nil {
			return nil, "dry_run", err
		}
	} else {
		if err := p.createPost(ctx, r, html); err != nil {
			return nil, "create_post", err
		}
		p.verify(ctx, r)
	}

	r.record.Warnings = r.warnings
	if err := r.dir.WriteResult(r.record); err != nil {
		return nil, "write_result", err
	}
	p.recordRun(ctx, r)

	return &Result{Record: r.record, Article: r.article, HTML: html}, "", nil
}

// Step 1: article generation. article.json is written before any network I/O.
func (p *Publisher) generateArticle(ctx context.Context, r *run) error {
	fmt.Fprintf(p.out, "📝 Step 1/7: Generating article...\n")
	start := time.Now()

	a, err := p.generator.Generate(ctx, article.Request{
		Prompt:       r.opts.Prompt,
		FocusKeyword: r.opts.FocusKeyword,
		UseLLM:       r.opts.UseLLM,
	})
	if err != nil {
		return fmt.Errorf("failed to generate article: %w", err)
	}
	if r.opts.Title != "" {
		a.Title = r.opts.Title
	}
	if a.ContentSource == "" {
		a.ContentSource = article.SourceRules
	}
	observability.ArticlesGenerated.WithLabelValues(string(a.ContentSource)).Inc()

	r.slug = firstNonEmpty(r.opts.Slug, a.Slug, article.Slugify(a.Title))
	a.Slug = r.slug
	r.article = a
	r.dir = assets.Open(p.config.OutputDir, r.slug)
	if err := r.dir.Ensure(); err != nil {
		return err
	}
	if err := r.dir.WriteArticle(a); err != nil {
		return err
	}

	r.record = assets.Record{
		RunID:         r.id,
		DryRun:        r.opts.DryRun,
		Slug:          r.slug,
		Title:         a.Title,
		AssetDir:      r.dir.Root,
		ContentSource: string(a.ContentSource),
		CategoryIDs:   []int{},
		TagIDs:        []int{},
	}

	fmt.Fprintf(p.out, "   ✓ %s (source: %s, %s)\n", a.Title, a.ContentSource, time.Since(start).Round(100*time.Millisecond))
	fmt.Fprintf(p.out, "   • slug: %s\n   • assets: %s\n\n", r.slug, r.dir.Root)
	return nil
}

// Step 2: images. Individual failures are logged and skipped.
func (p *Publisher) generateImages(ctx context.Context, r *run) error {
	fmt.Fprintf(p.out, "🎨 Step 2/7: Generating images...\n")
	if p.images == nil || !p.images.Available() {
		fmt.Fprintf(p.out, "   • Image generation not configured, skipping\n\n")
		return nil
	}

	a := r.article
	plan := article.ImagePrompts(a, r.opts.MaxImages)
	baseSeed := article.Seed(r.slug)

	var local []article.MediaRef
	for i, img := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := r.dir.ImagePath(img.Role, i)
		generated, err := p.images.Generate(ctx, img.Prompt, path, baseSeed+int64(i))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.warn(fmt.Sprintf("image %d: %v", i, err))
			logger.Warn("Image generation failed, skipping", "index", i, "role", string(img.Role), "error", err.Error())
			continue
		}

		ref := article.MediaRef{
			Role:      img.Role,
			AltText:   img.AltText,
			Caption:   img.Caption,
			LocalPath: r.relative(generated),
		}
		local = append(local, ref)

		title := firstNonEmpty(img.AltText, fmt.Sprintf("%s image %d", a.FocusKeyword, i))
		alt := firstNonEmpty(img.AltText, a.FocusKeyword)
		if !p.upload(ctx, r, generated, title, alt, &ref) {
			continue
		}

		if img.Role == article.RoleFeatured && r.featured == nil {
			featured := ref
			r.featured = &featured
			continue
		}
		ref.Role = article.RoleContent
		r.content = append(r.content, ref)
	}

	a.Images = local
	if err := r.dir.WriteArticle(a); err != nil {
		return err
	}
	r.record.MediaCount = len(r.content)
	if r.featured != nil {
		r.record.MediaCount++
	}
	fmt.Fprintf(p.out, "   ✓ %d/%d images ready\n\n", r.record.MediaCount, len(plan))
	return nil
}

// Step 3: optional video and avatar clips. Failures degrade the result.
func (p *Publisher) generateClips(ctx context.Context, r *run) error {
	if !r.opts.Video && !r.opts.Avatar {
		return nil
	}
	fmt.Fprintf(p.out, "🎬 Step 3/7: Generating video...\n")
	a := r.article

	if r.opts.Video {
		if p.video == nil || !p.video.Available() {
			r.warn("video generation not configured")
			fmt.Fprintf(p.out, "   ⚠️  Video generation not configured, skipping\n")
		} else if path, err := p.video.Generate(ctx, a.Title, bodyText(a), r.dir.Root, r.opts.VideoRatio); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.warn(err.Error())
			logger.Warn("Video generation failed, continuing without video", "error", err.Error())
			fmt.Fprintf(p.out, "   ⚠️  Video failed: %v\n", err)
		} else {
			ref := article.MediaRef{LocalPath: r.relative(path), AltText: a.FocusKeyword}
			if p.upload(ctx, r, path, a.Title+" - 视频", a.FocusKeyword, &ref) {
				a.Video = &ref
				r.record.HasVideo = true
				r.record.MediaCount++
				fmt.Fprintf(p.out, "   ✓ Video ready\n")
			}
		}
	}

	if r.opts.Avatar {
		script := firstNonEmpty(a.QuickAnswer, a.Excerpt)
		if p.avatar == nil || !p.avatar.Available() {
			r.warn("avatar generation not configured")
			fmt.Fprintf(p.out, "   ⚠️  Avatar generation not configured, skipping\n")
		} else if path, err := p.avatar.Generate(ctx, script, r.opts.AvatarImage, r.dir.Root); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.warn(err.Error())
			logger.Warn("Avatar generation failed, continuing without avatar", "error", err.Error())
			fmt.Fprintf(p.out, "   ⚠️  Avatar failed: %v\n", err)
		} else {
			ref := article.MediaRef{LocalPath: r.relative(path), AltText: a.FocusKeyword}
			if p.upload(ctx, r, path, a.Title+" - 数字人解读", a.FocusKeyword, &ref) {
				a.Avatar = &ref
				r.record.HasAvatar = true
				r.record.MediaCount++
				fmt.Fprintf(p.out, "   ✓ Avatar video ready\n")
			}
		}
	}

	switch {
	case a.Avatar != nil:
		r.embedURL = a.Avatar.URL
	case a.Video != nil:
		r.embedURL = a.Video.URL
	}

	if a.Video != nil || a.Avatar != nil {
		if err := r.dir.WriteArticle(a); err != nil {
			return err
		}
	}
	fmt.Fprintln(p.out)
	return nil
}

// upload pushes a generated file to the host and fills ref. Without a host
// the file is referenced by its path inside the asset directory so the
// preview still renders. Upload failures are logged and reported as false.
func (p *Publisher) upload(ctx context.Context, r *run, path, title, alt string, ref *article.MediaRef) bool {
	if p.host == nil {
		ref.URL = filepath.ToSlash(r.relative(path))
		return true
	}
	media, err := p.host.UploadMedia(ctx, path, title, alt)
	if err != nil {
		r.warn(fmt.Sprintf("upload %s: %v", filepath.Base(path), err))
		logger.Warn("Media upload failed, skipping", "file", filepath.Base(path), "error", err.Error())
		return false
	}
	ref.MediaID = media.ID
	ref.URL = media.SourceURL
	return true
}

// Step 4: categories and tags. Errors here abort the run.
func (p *Publisher) resolveTaxonomy(ctx context.Context, r *run) ([]int, []int, error) {
	fmt.Fprintf(p.out, "🏷️  Step 4/7: Resolving categories and tags...\n")
	categoryIDs := []int{}
	tagIDs := []int{}

	autoTags := r.article.Tags
	if len(autoTags) == 0 {
		autoTags = []string{r.article.FocusKeyword}
	}
	tags := FinalTags(r.opts.Tags, autoTags)

	if p.host == nil {
		fmt.Fprintf(p.out, "   • No host, %d categories and %d tags left unresolved\n\n", len(r.opts.Categories), len(tags))
		return categoryIDs, tagIDs, nil
	}

	for _, name := range r.opts.Categories {
		id, err := p.host.EnsureTerm(ctx, wordpress.Categories, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
		}
		if id > 0 {
			categoryIDs = append(categoryIDs, id)
		}
	}
	for _, name := range tags {
		id, err := p.host.EnsureTerm(ctx, wordpress.Tags, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		if id > 0 {
			tagIDs = append(tagIDs, id)
		}
	}

	fmt.Fprintf(p.out, "   ✓ %d categories, %d tags (%s)\n\n", len(categoryIDs), len(tagIDs), strings.Join(tags, ", "))
	return categoryIDs, tagIDs, nil
}

// Step 5: related posts, HTML and quality score.
func (p *Publisher) renderAndScore(ctx context.Context, r *run) (string, quality.Report, error) {
	fmt.Fprintf(p.out, "🧱 Step 5/7: Rendering HTML and scoring quality...\n")
	a := r.article

	var related []render.RelatedPost
	if p.host != nil && r.opts.RelatedLimit > 0 {
		var err error
		related, err = p.host.RelatedPosts(ctx, a.FocusKeyword, r.slug, r.opts.RelatedLimit)
		if err != nil {
			if ctx.Err() != nil {
				return "", quality.Report{}, ctx.Err()
			}
			logger.Warn("Related post lookup failed, continuing without related posts", "error", err.Error())
			related = nil
		}
	}
	r.record.RelatedCount = len(related)

	images := append([]article.MediaRef(nil), r.content...)
	if r.featured != nil {
		images = append([]article.MediaRef{*r.featured}, images...)
	}
	html, err := render.BuildContentHTML(render.Input{
		Article:      a,
		Images:       images,
		Related:      related,
		VideoURL:     r.embedURL,
		CanonicalURL: p.canonicalURL(r.slug),
		Published:    p.now(),
	})
	if err != nil {
		return "", quality.Report{}, err
	}

	report := quality.Evaluate(quality.Input{
		Article:       a,
		HTML:          html,
		ImageCount:    len(r.content),
		CategoryCount: len(r.record.CategoryIDs),
		TagCount:      len(r.record.TagIDs),
	})
	observability.QualityScore.Observe(float64(report.Score))
	r.record.Quality = &report

	fmt.Fprintf(p.out, "   ✓ Quality %d/100 (%s), %d related posts\n", report.Score, report.Grade, len(related))
	if keys := report.FailedKeys(); len(keys) > 0 {
		fmt.Fprintf(p.out, "   • Failed checks: %s\n", strings.Join(keys, ", "))
	}
	fmt.Fprintln(p.out)
	return html, report, nil
}

// Step 6a: dry run.
func (p *Publisher) writePreview(r *run, html string) error {
	fmt.Fprintf(p.out, "👀 Step 6/7: Writing dry-run preview...\n")
	path, err := r.dir.WritePreview(r.article.Title, html)
	if err != nil {
		return err
	}
	r.record.PreviewFile = path
	r.record.CreatedAt = p.now().UTC()
	fmt.Fprintf(p.out, "   ✓ Preview saved to %s\n\n", path)
	return nil
}

// Step 6b: create the post.
func (p *Publisher) createPost(ctx context.Context, r *run, html string) error {
	fmt.Fprintf(p.out, "🚀 Step 6/7: Publishing to WordPress...\n")
	payload := p.BuildPayload(r.article, r.slug, html, r.opts.Status, r.record.CategoryIDs, r.record.TagIDs, r.featured)

	post, err := p.host.CreatePost(ctx, payload)
	if err != nil {
		return err
	}
	r.record.PostID = post.ID
	r.record.Link = post.Link
	r.record.Status = post.Status
	if post.Slug != "" {
		r.record.Slug = post.Slug
	}
	r.record.CreatedAt = p.now().UTC()
	fmt.Fprintf(p.out, "   ✓ Post %d published: %s\n\n", post.ID, post.Link)
	return nil
}

// BuildPayload assembles the post body with Rank Math SEO meta.
func (p *Publisher) BuildPayload(a *article.Article, slug, html, status string, categoryIDs, tagIDs []int, featured *article.MediaRef) wordpress.PostPayload {
	seoTitle := fmt.Sprintf("%s | %s", a.Title, p.config.SiteName)
	payload := wordpress.PostPayload{
		Title:      a.Title,
		Slug:       slug,
		Content:    html,
		Excerpt:    a.Excerpt,
		Status:     status,
		Categories: categoryIDs,
		Tags:       tagIDs,
		Meta: map[string]string{
			"rank_math_title":                seoTitle,
			"rank_math_description":          a.SEODescription,
			"rank_math_focus_keyword":        a.FocusKeyword,
			"rank_math_canonical_url":        p.canonicalURL(slug),
			"rank_math_robots":               robotsDirective,
			"rank_math_twitter_title":        seoTitle,
			"rank_math_twitter_description":  a.SEODescription,
			"rank_math_facebook_title":       seoTitle,
			"rank_math_facebook_description": a.SEODescription,
			"rank_math_schema_type":          "Article",
		},
	}
	if featured != nil && featured.MediaID > 0 {
		payload.FeaturedMedia = featured.MediaID
	}
	return payload
}

// Step 7: optional online verification.
func (p *Publisher) verify(ctx context.Context, r *run) {
	if !r.opts.Verify || p.verifier == nil || r.record.Link == "" {
		return
	}
	fmt.Fprintf(p.out, "🔎 Step 7/7: Verifying live page...\n")
	check := p.verifier.VerifyPage(ctx, r.record.Link)
	r.record.Verify = &check
	if check.OK {
		fmt.Fprintf(p.out, "   ✓ Live page has JSON-LD, FAQ and images\n\n")
	} else {
		fmt.Fprintf(p.out, "   ⚠️  Live page check failed (status %d, ld_json=%t, faq=%t, img=%t)\n\n",
			check.StatusCode, check.HasLDJSON, check.HasFAQ, check.HasImage)
	}
}

func (p *Publisher) recordRun(ctx context.Context, r *run) {
	if p.recorder == nil {
		return
	}
	rec := r.record
	entry := store.Run{
		RunID:         rec.RunID,
		Slug:          rec.Slug,
		Title:         rec.Title,
		DryRun:        rec.DryRun,
		PostID:        rec.PostID,
		Link:          rec.Link,
		Status:        rec.Status,
		ContentSource: rec.ContentSource,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.Quality != nil {
		entry.Score = rec.Quality.Score
		entry.Grade = rec.Quality.Grade
	}
	if err := p.recorder.RecordRun(ctx, entry); err != nil {
		logger.Warn("Failed to record run history", "run_id", rec.RunID, "error", err.Error())
	}
}

func (p *Publisher) canonicalURL(slug string) string {
	if p.host == nil {
		return "/" + slug + "/"
	}
	return p.host.CanonicalURL(slug)
}

func (r *run) warn(msg string) {
	r.warnings = append(r.warnings, msg)
}

// relative returns path relative to the asset directory when possible.
func (r *run) relative(path string) string {
	if rel, err := filepath.Rel(r.dir.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// FinalTags merges explicit and article tags, keeping first occurrences and
// dropping tags longer than 15 characters.
func FinalTags(explicit, auto []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range append(append([]string(nil), explicit...), auto...) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] || utf8.RuneCountInString(t) > maxTagRunes {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func bodyText(a *article.Article) string {
	var parts []string
	for _, s := range a.Sections {
		parts = append(parts, s.Paragraphs...)
	}
	return strings.Join(parts, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsQualityError reports whether err came from a strict quality gate.
func IsQualityError(err error) bool {
	var qe *apperr.QualityError
	return errors.As(err, &qe)
}
