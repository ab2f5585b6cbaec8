package article

import (
	"aineoo/internal/logger"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minMergedSections   = 3
	maxMergedSections   = 6
	maxMergedParagraphs = 5
	minMergedFAQ        = 3
	maxMergedFAQ        = 8
	minFAQAnswer        = 15
	minTakeaways        = 3
	maxTakeaways        = 6
	maxMergedTags       = 8
)

// mergeRule validates one field of an LLM payload and applies it to dst when
// it passes. It reports whether dst was changed.
type mergeRule struct {
	key   string
	apply func(dst *Article, v any) bool
}

var mergeRules = []mergeRule{
	{"title", textField(func(a *Article, s string) { a.Title = s })},
	{"slug", mergeSlug},
	{"focus_keyword", textField(func(a *Article, s string) { a.FocusKeyword = truncateRunes(s, maxFocusKeyword) })},
	{"seo_description", textField(func(a *Article, s string) { a.SEODescription = s })},
	{"excerpt", textField(func(a *Article, s string) { a.Excerpt = s })},
	{"quick_answer", textField(func(a *Article, s string) { a.QuickAnswer = s })},
	{"conclusion", textField(func(a *Article, s string) { a.Conclusion = s })},
	{"key_takeaways", mergeTakeaways},
	{"sections", mergeSections},
	{"faq", mergeFAQ},
	{"tags", mergeTags},
	{"cta", mergeCTA},
}

// Merge overlays an LLM payload onto base field by field. A field is taken
// from the payload only when it passes its own structural check, so the
// result is never less complete than base. base is not modified.
func Merge(base *Article, payload map[string]any) *Article {
	out := base.Clone()
	var applied []string
	for _, rule := range mergeRules {
		v, ok := payload[rule.key]
		if !ok || v == nil {
			continue
		}
		if rule.apply(out, v) {
			applied = append(applied, rule.key)
		}
	}
	logger.Debug("Merged LLM fields", "applied", strings.Join(applied, ","))
	out.ContentSource = SourceDeepSeek
	return out
}

func textField(set func(*Article, string)) func(*Article, any) bool {
	return func(a *Article, v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return false
		}
		set(a, s)
		return true
	}
}

func mergeSlug(a *Article, v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if !SlugPattern.MatchString(s) {
		return false
	}
	a.Slug = s
	return true
}

func mergeTakeaways(a *Article, v any) bool {
	items := stringList(v)
	if len(items) < minTakeaways {
		return false
	}
	a.KeyTakeaways = items[:min(len(items), maxTakeaways)]
	return true
}

func mergeSections(a *Article, v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	var sections []Section
	for _, raw := range list[:min(len(list), maxMergedSections)] {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title := scalarString(m["title"])
		paras := stringList(m["paragraphs"])
		if title == "" || len(paras) < 2 {
			continue
		}
		sections = append(sections, Section{Title: title, Paragraphs: paras[:min(len(paras), maxMergedParagraphs)]})
	}
	if len(sections) < minMergedSections {
		logger.Warn("LLM returned too few valid sections, keeping rule-based sections", "valid", len(sections))
		return false
	}
	a.Sections = sections
	return true
}

func mergeFAQ(a *Article, v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	var faq []FAQItem
	for _, raw := range list[:min(len(list), maxMergedFAQ)] {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		q := firstNonEmpty(scalarString(m["question"]), scalarString(m["q"]))
		ans := firstNonEmpty(scalarString(m["answer"]), scalarString(m["a"]))
		if q == "" || utf8.RuneCountInString(ans) < minFAQAnswer {
			continue
		}
		faq = append(faq, FAQItem{Question: q, Answer: ans})
	}
	if len(faq) < minMergedFAQ {
		return false
	}
	a.FAQ = faq
	return true
}

func mergeTags(a *Article, v any) bool {
	var tags []string
	seen := map[string]bool{}
	for _, t := range stringList(v) {
		n := utf8.RuneCountInString(t)
		if n < 2 || n > 10 || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	if len(tags) == 0 {
		return false
	}
	a.Tags = tags[:min(len(tags), maxMergedTags)]
	return true
}

func mergeCTA(a *Article, v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	heading := scalarString(m["heading"])
	text := scalarString(m["text"])
	if heading == "" || text == "" {
		return false
	}
	a.CTA = CTA{Heading: heading, Text: text}
	return true
}

// stringList converts a JSON array into its non-empty trimmed scalar items.
func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s := scalarString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// scalarString renders JSON scalars as trimmed text; objects and arrays yield "".
func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
