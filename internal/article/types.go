// Package article builds structured long-form articles from a free-text prompt.
//
// Generation always starts from a deterministic rule engine. When an LLM is
// available its JSON output is merged field by field on top of the rule-based
// article, and a field is only replaced when the LLM value passes that field's
// own structural check.
package article

// Intent is a coarse content-shape classification that selects template pools.
type Intent string

const (
	IntentTutorial   Intent = "tutorial"
	IntentComparison Intent = "comparison"
	IntentListicle   Intent = "listicle"
	IntentRisk       Intent = "risk"
	IntentDefault    Intent = "default"
)

// Intents lists every intent in detection order, followed by the default.
var Intents = []Intent{IntentTutorial, IntentComparison, IntentListicle, IntentRisk, IntentDefault}

// ContentSource records whether an article came from the rule engine or an LLM merge.
type ContentSource string

const (
	SourceRules    ContentSource = "rules"
	SourceDeepSeek ContentSource = "deepseek"
)

// Article is the structured content object persisted as article.json.
type Article struct {
	Topic          string        `json:"topic"`
	Intent         Intent        `json:"intent"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	FocusKeyword   string        `json:"focus_keyword"`
	SEODescription string        `json:"seo_description"`
	Excerpt        string        `json:"excerpt"`
	QuickAnswer    string        `json:"quick_answer"`
	KeyTakeaways   []string      `json:"key_takeaways"`
	FAQ            []FAQItem     `json:"faq"`
	Sections       []Section     `json:"sections"`
	Tags           []string      `json:"tags"`
	Conclusion     string        `json:"conclusion"`
	CTA            CTA           `json:"cta"`
	ContentSource  ContentSource `json:"content_source"`

	// Populated by the publish pipeline after media generation.
	Images []MediaRef `json:"images,omitempty"`
	Video  *MediaRef  `json:"video,omitempty"`
	Avatar *MediaRef  `json:"avatar,omitempty"`
}

type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type CTA struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// ImageRole distinguishes the cover image from inline section images.
type ImageRole string

const (
	RoleFeatured ImageRole = "featured"
	RoleContent  ImageRole = "content"
)

// ImageSpec describes one image to generate for an article.
type ImageSpec struct {
	Role    ImageRole `json:"role"`
	Prompt  string    `json:"prompt"`
	AltText string    `json:"alt_text"`
	Caption string    `json:"caption"`
}

// MediaRef points at a generated media file and, once uploaded, its hosted copy.
type MediaRef struct {
	Role      ImageRole `json:"role,omitempty"`
	MediaID   int       `json:"media_id,omitempty"`
	URL       string    `json:"url,omitempty"`
	AltText   string    `json:"alt_text,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	LocalPath string    `json:"local_path,omitempty"`
}

// ContentImages returns the uploaded images with the content role, in order.
func (a *Article) ContentImages() []MediaRef {
	var out []MediaRef
	for _, img := range a.Images {
		if img.Role == RoleContent {
			out = append(out, img)
		}
	}
	return out
}

// Clone returns a deep copy so merges never alias the base article.
func (a *Article) Clone() *Article {
	c := *a
	c.KeyTakeaways = append([]string(nil), a.KeyTakeaways...)
	c.Tags = append([]string(nil), a.Tags...)
	c.FAQ = append([]FAQItem(nil), a.FAQ...)
	c.Sections = nil
	for _, s := range a.Sections {
		c.Sections = append(c.Sections, Section{Title: s.Title, Paragraphs: append([]string(nil), s.Paragraphs...)})
	}
	c.Images = append([]MediaRef(nil), a.Images...)
	if a.Video != nil {
		v := *a.Video
		c.Video = &v
	}
	if a.Avatar != nil {
		v := *a.Avatar
		c.Avatar = &v
	}
	return &c
}
