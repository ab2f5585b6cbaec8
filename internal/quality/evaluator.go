// Package quality scores rendered articles against a fixed set of weighted
// SEO and structure checks, and gates publishing on the result.
package quality

import (
	"aineoo/internal/article"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

// Input is everything the evaluator looks at. It performs no I/O.
type Input struct {
	Article       *article.Article
	HTML          string
	ImageCount    int
	CategoryCount int
	TagCount      int
}

// Check keys, in evaluation order.
const (
	KeyTitleLength    = "title_length"
	KeySEODescription = "seo_description_length"
	KeyExcerptLength  = "excerpt_length"
	KeySectionCount   = "section_count"
	KeyFAQCount       = "faq_count"
	KeyStructuredData = "structured_data"
	KeyFAQBlock       = "faq_block"
	KeyQuickAnswer    = "quick_answer"
	KeyFocusKeyword   = "focus_keyword"
	KeyImageCount     = "image_count"
	KeyCategoryCount  = "category_count"
	KeyTagCount       = "tag_count"
)

// Markers the renderer emits and the evaluator looks for.
const (
	JSONLDMarker      = `"application/ld+json"`
	FAQMarker         = "FAQ"
	QuickAnswerMarker = "quick-answer"
)

// Evaluate runs all twelve checks. score = floor(100 * passed / total weight).
func Evaluate(in Input) Report {
	a := in.Article
	if a == nil {
		a = &article.Article{}
	}
	doc := in.HTML

	titleLen := utf8.RuneCountInString(a.Title)
	descLen := utf8.RuneCountInString(a.SEODescription)
	excerptLen := utf8.RuneCountInString(a.Excerpt)
	hasLD := strings.Contains(doc, JSONLDMarker)
	hasFAQ := strings.Contains(doc, FAQMarker)
	hasQuick := strings.Contains(doc, QuickAnswerMarker)
	hasFocus := a.FocusKeyword != "" &&
		(strings.Contains(doc, a.FocusKeyword) || strings.Contains(doc, html.EscapeString(a.FocusKeyword)))

	checks := []Check{
		{KeyTitleLength, "标题长度", between(titleLen, 10, 65), 10, fmt.Sprintf("title_len=%d", titleLen)},
		{KeySEODescription, "SEO描述长度", between(descLen, 60, 160), 12, fmt.Sprintf("seo_desc_len=%d", descLen)},
		{KeyExcerptLength, "摘要长度", between(excerptLen, 40, 160), 8, fmt.Sprintf("excerpt_len=%d", excerptLen)},
		{KeySectionCount, "章节数量", len(a.Sections) >= 3, 12, fmt.Sprintf("sections=%d", len(a.Sections))},
		{KeyFAQCount, "FAQ数量", len(a.FAQ) >= 3, 10, fmt.Sprintf("faq=%d", len(a.FAQ))},
		{KeyStructuredData, "结构化数据", hasLD, 12, fmt.Sprintf("ld_json=%t", hasLD)},
		{KeyFAQBlock, "FAQ区块", hasFAQ, 8, fmt.Sprintf("faq_section=%t", hasFAQ)},
		{KeyQuickAnswer, "快速回答", hasQuick, 8, fmt.Sprintf("quick_answer=%t", hasQuick)},
		{KeyFocusKeyword, "主题词覆盖", hasFocus, 8, fmt.Sprintf("focus_keyword=%s", a.FocusKeyword)},
		{KeyImageCount, "正文图片数", in.ImageCount >= 2, 6, fmt.Sprintf("images=%d", in.ImageCount)},
		{KeyCategoryCount, "分类数量", in.CategoryCount >= 1, 3, fmt.Sprintf("categories=%d", in.CategoryCount)},
		{KeyTagCount, "标签数量", in.TagCount >= 3, 3, fmt.Sprintf("tags=%d", in.TagCount)},
	}

	report := Report{Checks: checks, Failed: []Check{}}
	total, got := 0, 0
	for _, c := range checks {
		total += c.Weight
		if c.Passed {
			got += c.Weight
		} else {
			report.Failed = append(report.Failed, c)
		}
	}
	if total > 0 {
		report.Score = got * 100 / total
	}
	report.Grade = GradeScore(report.Score)
	return report
}

func between(n, lo, hi int) bool {
	return n >= lo && n <= hi
}
