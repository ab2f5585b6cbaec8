package wordpress

import (
	"aineoo/internal/quality"
	"aineoo/internal/render"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Statuses accepted by CreatePost.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// PostPayload is the body sent to POST /posts.
type PostPayload struct {
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Excerpt       string            `json:"excerpt"`
	Status        string            `json:"status"`
	Categories    []int             `json:"categories"`
	Tags          []int             `json:"tags"`
	FeaturedMedia int               `json:"featured_media,omitempty"`
	Meta          map[string]string `json:"meta,omitempty"`
}

// CreatedPost is the subset of the created post the pipeline reports.
type CreatedPost struct {
	ID     int    `json:"id"`
	Slug   string `json:"slug"`
	Link   string `json:"link"`
	Status string `json:"status"`
}

// Post is a published post reduced to plain text.
type Post struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt"`
	Slug             string   `json:"slug"`
	Link             string   `json:"link"`
	Date             string   `json:"date"`
	FeaturedImageURL string   `json:"featured_image_url,omitempty"`
	ContentImageURLs []string `json:"content_image_urls,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Categories       []string `json:"categories,omitempty"`
}

// ImageURLs returns the featured image followed by content images, deduplicated.
func (p Post) ImageURLs() []string {
	var urls []string
	seen := make(map[string]bool)
	for _, u := range append([]string{p.FeaturedImageURL}, p.ContentImageURLs...) {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

type rendered struct {
	Rendered string `json:"rendered"`
}

type rawPost struct {
	ID       int      `json:"id"`
	Title    rendered `json:"title"`
	Content  rendered `json:"content"`
	Excerpt  rendered `json:"excerpt"`
	Slug     string   `json:"slug"`
	Link     string   `json:"link"`
	Date     string   `json:"date"`
	Embedded struct {
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
		Terms [][]struct {
			Name     string `json:"name"`
			Taxonomy string `json:"taxonomy"`
		} `json:"wp:term"`
	} `json:"_embedded"`
}

// CreatePost creates a post and expects 201 Created.
func (c *Client) CreatePost(ctx context.Context, payload PostPayload) (*CreatedPost, error) {
	var post CreatedPost
	if err := c.postJSON(ctx, "/posts", payload, &post, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// RelatedPosts searches published posts for keyword and returns up to limit
// links, skipping the post whose slug is excludeSlug.
func (c *Client) RelatedPosts(ctx context.Context, keyword, excludeSlug string, limit int) ([]render.RelatedPost, error) {
	if limit <= 0 || strings.TrimSpace(keyword) == "" {
		return nil, nil
	}
	perPage := min(10, max(limit*2, 3))
	query := url.Values{
		"search":   {keyword},
		"per_page": {strconv.Itoa(perPage)},
		"status":   {StatusPublish},
		"_fields":  {"id,slug,link,title"},
	}

	var items []rawPost
	if err := c.getJSON(ctx, "/posts", query, &items); err != nil {
		return nil, fmt.Errorf("failed to search related posts: %w", err)
	}

	var related []render.RelatedPost
	for _, item := range items {
		if item.Slug == excludeSlug {
			continue
		}
		related = append(related, render.RelatedPost{
			ID:    item.ID,
			Title: stripHTML(item.Title.Rendered),
			Link:  item.Link,
		})
		if len(related) >= limit {
			break
		}
	}
	return related, nil
}

// ListOptions filters ListPosts.
type ListOptions struct {
	PerPage int
	Page    int
	Status  string
	Search  string
}

// ListPosts returns one page of posts with embedded media and terms.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) ([]Post, error) {
	if opts.PerPage <= 0 {
		opts.PerPage = 10
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Status == "" {
		opts.Status = StatusPublish
	}
	query := url.Values{
		"per_page": {strconv.Itoa(opts.PerPage)},
		"page":     {strconv.Itoa(opts.Page)},
		"status":   {opts.Status},
		"_embed":   {"1"},
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}

	var items []rawPost
	if err := c.getJSON(ctx, "/posts", query, &items); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]Post, 0, len(items))
	for _, item := range items {
		posts = append(posts, parsePost(item))
	}
	return posts, nil
}

// GetPost fetches a single post by id.
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var item rawPost
	query := url.Values{"_embed": {"1"}}
	if err := c.getJSON(ctx, "/posts/"+strconv.Itoa(id), query, &item); err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	post := parsePost(item)
	return &post, nil
}

// VerifyPage fetches the live article and checks it with quality.InspectPage.
// Failures are reported in the result rather than returned.
func (c *Client) VerifyPage(ctx context.Context, link string) quality.PageCheck {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return quality.PageCheck{Detail: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return quality.PageCheck{Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return quality.PageCheck{StatusCode: resp.StatusCode, Detail: "页面访问失败"}
	}
	pc, err := quality.InspectPage(resp.Body)
	if err != nil {
		return quality.PageCheck{StatusCode: resp.StatusCode, Detail: err.Error()}
	}
	pc.StatusCode = resp.StatusCode
	return pc
}

func parsePost(item rawPost) Post {
	post := Post{
		ID:               item.ID,
		Title:            stripHTML(item.Title.Rendered),
		Content:          stripHTML(item.Content.Rendered),
		Excerpt:          stripHTML(item.Excerpt.Rendered),
		Slug:             item.Slug,
		Link:             item.Link,
		Date:             item.Date,
		ContentImageURLs: imageURLs(item.Content.Rendered),
	}
	if fm := item.Embedded.FeaturedMedia; len(fm) > 0 {
		post.FeaturedImageURL = fm[0].SourceURL
	}
	for _, group := range item.Embedded.Terms {
		for _, t := range group {
			switch t.Taxonomy {
			case "category":
				post.Categories = append(post.Categories, t.Name)
			case "post_tag":
				post.Tags = append(post.Tags, t.Name)
			}
		}
	}
	return post
}

var (
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
	inlineSpaces     = regexp.MustCompile(`[ \t]+`)
)

// stripHTML reduces rendered HTML to text, keeping paragraph breaks.
func stripHTML(raw string) string {
	if raw == "" {
		return ""
	}
	raw = lineBreakPattern.ReplaceAllStringFunc(raw, func(m string) string { return m + "\n" })
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	text := blankLines.ReplaceAllString(doc.Text(), "\n\n")
	return strings.TrimSpace(inlineSpaces.ReplaceAllString(text, " "))
}

func imageURLs(raw string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil
	}
	var urls []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			urls = append(urls, src)
		}
	})
	return urls
}
