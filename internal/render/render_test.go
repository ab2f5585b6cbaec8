package render

import (
	"aineoo/internal/apperr"
	"aineoo/internal/article"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

var published = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleArticle() *article.Article {
	return &article.Article{
		Title:          "AI客服自动化实战指南",
		FocusKeyword:   "AI客服",
		SEODescription: "一篇关于AI客服自动化的文章",
		Excerpt:        "读完你会知道如何落地。",
		QuickAnswer:    "先从高频问题开始。",
		KeyTakeaways:   []string{"要点一", "要点二", "要点三"},
		Sections: []article.Section{
			{Title: "为什么现在做", Paragraphs: []string{"段落A1", "段落A2"}},
			{Title: "怎么做", Paragraphs: []string{"段落B1", "段落B2"}},
			{Title: "如何衡量", Paragraphs: []string{"段落C1", "段落C2"}},
		},
		FAQ: []article.FAQItem{
			{Question: "成本高吗？", Answer: "从小范围试点开始，成本可控。"},
		},
		Tags:       []string{"AI客服", "自动化"},
		Conclusion: "总结一下。",
		CTA:        article.CTA{Heading: "从今天开始", Text: "挑一个流程试试。"},
	}
}

func render(t *testing.T, in Input) string {
	t.Helper()
	if in.Published.IsZero() {
		in.Published = published
	}
	out, err := BuildContentHTML(in)
	if err != nil {
		t.Fatalf("BuildContentHTML failed: %v", err)
	}
	return out
}

func assertOrder(t *testing.T, html string, markers ...string) {
	t.Helper()
	last := -1
	for _, m := range markers {
		idx := strings.Index(html, m)
		if idx < 0 {
			t.Fatalf("Expected marker %q in output", m)
		}
		if idx <= last {
			t.Errorf("Expected %q after previous marker", m)
		}
		last = idx
	}
}

func TestBuildContentHTMLOrder(t *testing.T) {
	in := Input{
		Article: sampleArticle(),
		Images: []article.MediaRef{
			{Role: article.RoleFeatured, URL: "https://example.com/cover.png"},
			{Role: article.RoleContent, URL: "https://example.com/c0.png", AltText: "配图0"},
		},
		Related:      []RelatedPost{{ID: 7, Title: "相关一", Link: "https://example.com/r1/"}},
		VideoURL:     "https://example.com/v.mp4",
		CanonicalURL: "https://example.com/ai-ke-fu/",
	}
	html := render(t, in)

	assertOrder(t, html,
		"<h1",
		"读完你会知道如何落地。",
		`<video`,
		"目录",
		`class="quick-answer"`,
		`id="section-1-为什么现在做"`,
		`src="https://example.com/c0.png"`,
		`id="section-2-怎么做"`,
		"总结",
		"关键要点",
		"从今天开始",
		"常见问题（FAQ）",
		"相关文章",
		`"FAQPage"`,
		`"Article"`,
		`"VideoObject"`,
	)

	if strings.Count(html, "<figure") != 1 {
		t.Errorf("Expected one inline figure, got %d", strings.Count(html, "<figure"))
	}
	if !strings.Contains(html, `"thumbnailUrl":"https://example.com/cover.png"`) {
		t.Error("Expected featured image as video thumbnail")
	}
	if !strings.Contains(html, `"datePublished":"2026-03-01T09:30:00Z"`) {
		t.Error("Expected injected publish time in Article JSON-LD")
	}
}

func TestBuildContentHTMLOptionalBlocks(t *testing.T) {
	a := sampleArticle()
	a.QuickAnswer = ""
	a.FAQ = nil
	a.CTA = article.CTA{}
	html := render(t, Input{Article: a})

	for _, absent := range []string{"quick-answer", "FAQ", "相关文章", "<video", "VideoObject", "<figure", "下一步行动"} {
		if strings.Contains(html, absent) {
			t.Errorf("Expected %q to be absent", absent)
		}
	}
	if strings.Count(html, `<script type="application/ld+json">`) != 1 {
		t.Errorf("Expected only the Article JSON-LD, got:\n%s", html)
	}
}

func TestBuildContentHTMLEscapesText(t *testing.T) {
	a := sampleArticle()
	a.Title = `<script>alert("x")</script>标题`
	a.Sections[0].Paragraphs[0] = `a & b <b>bold</b>`
	html := render(t, Input{Article: a})

	if strings.Contains(html, `</script>标题`) {
		t.Error("Expected title to never close a script element")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;标题") {
		t.Error("Expected escaped title in output")
	}
	if !strings.Contains(html, "a &amp; b &lt;b&gt;bold&lt;/b&gt;") {
		t.Error("Expected escaped paragraph in output")
	}
}

var scriptPattern = regexp.MustCompile(`(?s)<script type="application/ld\+json">(.*?)</script>`)

func TestJSONLDCannotCloseScript(t *testing.T) {
	a := sampleArticle()
	a.FAQ[0].Answer = `答案</script><script>alert(1)</script>`
	html := render(t, Input{Article: a})

	scripts := scriptPattern.FindAllStringSubmatch(html, -1)
	if len(scripts) != 2 {
		t.Fatalf("Expected 2 JSON-LD scripts, got %d", len(scripts))
	}

	var faq struct {
		Type       string `json:"@type"`
		MainEntity []struct {
			AcceptedAnswer struct {
				Text string `json:"text"`
			} `json:"acceptedAnswer"`
		} `json:"mainEntity"`
	}
	if err := json.Unmarshal([]byte(scripts[0][1]), &faq); err != nil {
		t.Fatalf("FAQ JSON-LD is not valid JSON: %v", err)
	}
	if faq.Type != "FAQPage" {
		t.Errorf("Expected FAQPage first, got %s", faq.Type)
	}
	if got := faq.MainEntity[0].AcceptedAnswer.Text; got != a.FAQ[0].Answer {
		t.Errorf("Expected answer to round-trip, got %q", got)
	}
}

func TestJSONForScript(t *testing.T) {
	got, err := JSONForScript(map[string]string{"name": "</script>中文"})
	if err != nil {
		t.Fatalf("JSONForScript failed: %v", err)
	}
	want := `{"name":"<\/script>中文"}`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestBuildContentHTMLRelatedDefaults(t *testing.T) {
	html := render(t, Input{Article: sampleArticle(), Related: []RelatedPost{{ID: 3}}})
	if !strings.Contains(html, `<a href="#" style="color:#2563eb;text-decoration:none;">相关文章</a>`) {
		t.Errorf("Expected default related link, got:\n%s", html)
	}
}

func TestBuildContentHTMLNilArticle(t *testing.T) {
	if _, err := BuildContentHTML(Input{}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestMakeAnchorID(t *testing.T) {
	tests := []struct {
		title string
		index int
		want  string
	}{
		{"为什么现在做", 0, "section-1-为什么现在做"},
		{"Step 1: Setup & Deploy", 2, "section-3-step-1-setup-deploy"},
		{"!!!", 4, "section-5"},
		{"", 0, "section-1"},
		{"snake_case  title", 1, "section-2-snake-case-title"},
		{"ＡＩ客服", 0, "section-1-ai客服"},
		{strings.Repeat("长", 40), 0, "section-1-" + strings.Repeat("长", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := MakeAnchorID(tt.title, tt.index); got != tt.want {
				t.Errorf("MakeAnchorID(%q, %d) = %q, want %q", tt.title, tt.index, got, tt.want)
			}
		})
	}
}
