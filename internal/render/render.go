// Package render turns a structured article into the HTML body posted to
// WordPress: headline, TOC, quick answer, sections with inline figures,
// summary, FAQ, related posts and schema.org JSON-LD.
package render

import (
	"aineoo/internal/apperr"
	"aineoo/internal/article"
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// RelatedPost is a link to another post on the same site.
type RelatedPost struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Input carries everything the renderer needs. Images holds the uploaded
// media; content-role images are placed inline by section index and the
// first featured image becomes the video thumbnail.
type Input struct {
	Article      *article.Article
	Images       []article.MediaRef
	Related      []RelatedPost
	VideoURL     string
	CanonicalURL string
	Published    time.Time
}

type tocEntry struct {
	Anchor string
	Title  string
}

type figure struct {
	URL     string
	AltText string
	Caption string
}

type sectionView struct {
	Anchor     string
	Title      string
	Paragraphs []string
	Figure     *figure
}

type pageData struct {
	Title       string
	Intro       string
	VideoURL    string
	QuickAnswer string
	TOC         []tocEntry
	Sections    []sectionView
	Conclusion  string
	Takeaways   []string
	CTA         article.CTA
	FAQ         []article.FAQItem
	Related     []RelatedPost
	Schemas     []template.JS
}

var page = template.Must(template.New("article").Parse(articleTemplate))

// BuildContentHTML renders the article body. The output is deterministic for
// a given Input; Published is the only time-dependent value.
func BuildContentHTML(in Input) (string, error) {
	a := in.Article
	if a == nil {
		return "", fmt.Errorf("render: nil article: %w", apperr.ErrInvalidInput)
	}

	data := pageData{
		Title:       a.Title,
		Intro:       a.Excerpt,
		VideoURL:    in.VideoURL,
		QuickAnswer: a.QuickAnswer,
		Conclusion:  a.Conclusion,
		Takeaways:   a.KeyTakeaways,
		CTA:         a.CTA,
		FAQ:         a.FAQ,
	}
	for _, rp := range in.Related {
		rp.Link = firstNonEmpty(rp.Link, "#")
		rp.Title = firstNonEmpty(rp.Title, "相关文章")
		data.Related = append(data.Related, rp)
	}
	if data.CTA.Text != "" && data.CTA.Heading == "" {
		data.CTA.Heading = "下一步行动"
	}

	content := contentImages(in.Images)
	for i, s := range a.Sections {
		anchor := MakeAnchorID(s.Title, i)
		data.TOC = append(data.TOC, tocEntry{Anchor: anchor, Title: s.Title})

		view := sectionView{Anchor: anchor, Title: s.Title, Paragraphs: s.Paragraphs}
		if i < len(content) && content[i].URL != "" {
			img := content[i]
			view.Figure = &figure{
				URL:     img.URL,
				AltText: firstNonEmpty(img.AltText, a.FocusKeyword+" illustration"),
				Caption: firstNonEmpty(img.Caption, s.Title),
			}
		}
		data.Sections = append(data.Sections, view)
	}

	schemas, err := buildSchemas(in)
	if err != nil {
		return "", err
	}
	data.Schemas = schemas

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute article template: %w", err)
	}
	return buf.String(), nil
}

func contentImages(images []article.MediaRef) []article.MediaRef {
	var out []article.MediaRef
	for _, img := range images {
		if img.Role == article.RoleContent {
			out = append(out, img)
		}
	}
	return out
}

func featuredURL(images []article.MediaRef) string {
	for _, img := range images {
		if img.Role == article.RoleFeatured {
			return img.URL
		}
	}
	return ""
}

type faqSchema struct {
	Context    string           `json:"@context"`
	Type       string           `json:"@type"`
	MainEntity []questionSchema `json:"mainEntity"`
}

type questionSchema struct {
	Type           string       `json:"@type"`
	Name           string       `json:"name"`
	AcceptedAnswer answerSchema `json:"acceptedAnswer"`
}

type answerSchema struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type articleSchema struct {
	Context          string `json:"@context"`
	Type             string `json:"@type"`
	Headline         string `json:"headline"`
	Description      string `json:"description"`
	Keywords         string `json:"keywords"`
	DatePublished    string `json:"datePublished"`
	MainEntityOfPage string `json:"mainEntityOfPage"`
}

type videoSchema struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContentURL   string `json:"contentUrl"`
	UploadDate   string `json:"uploadDate"`
	Duration     string `json:"duration"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

const schemaContext = "https://schema.org"

// buildSchemas returns FAQPage (only with FAQ), Article (always) and
// VideoObject (only with a video) payloads in that order.
func buildSchemas(in Input) ([]template.JS, error) {
	a := in.Article
	published := in.Published
	if published.IsZero() {
		published = time.Now()
	}
	stamp := published.Format(time.RFC3339)

	var payloads []any
	if len(a.FAQ) > 0 {
		fs := faqSchema{Context: schemaContext, Type: "FAQPage"}
		for _, item := range a.FAQ {
			fs.MainEntity = append(fs.MainEntity, questionSchema{
				Type:           "Question",
				Name:           item.Question,
				AcceptedAnswer: answerSchema{Type: "Answer", Text: item.Answer},
			})
		}
		payloads = append(payloads, fs)
	}

	keywords := a.Tags
	if len(keywords) == 0 {
		keywords = []string{a.FocusKeyword}
	}
	payloads = append(payloads, articleSchema{
		Context:          schemaContext,
		Type:             "Article",
		Headline:         a.Title,
		Description:      a.SEODescription,
		Keywords:         strings.Join(keywords, ","),
		DatePublished:    stamp,
		MainEntityOfPage: in.CanonicalURL,
	})

	if in.VideoURL != "" {
		payloads = append(payloads, videoSchema{
			Context:      schemaContext,
			Type:         "VideoObject",
			Name:         a.Title,
			Description:  a.SEODescription,
			ContentURL:   in.VideoURL,
			UploadDate:   stamp,
			Duration:     "PT10S",
			ThumbnailURL: featuredURL(in.Images),
		})
	}

	out := make([]template.JS, 0, len(payloads))
	for _, p := range payloads {
		s, err := JSONForScript(p)
		if err != nil {
			return nil, err
		}
		out = append(out, template.JS(s))
	}
	return out, nil
}

// JSONForScript encodes v for embedding in a <script> element. Non-ASCII
// text is kept as-is and every "</" is escaped so the payload cannot close
// the element early.
func JSONForScript(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode JSON-LD: %w", err)
	}
	s := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(s, "</", `<\/`), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
