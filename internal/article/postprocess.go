package article

import (
	"regexp"
	"strings"
)

var (
	repeatedCommas  = regexp.MustCompile(`[，,]{2,}`)
	repeatedEnumera = regexp.MustCompile(`、{2,}`)
	leadingPunct    = regexp.MustCompile(`^[，,、]+`)
)

// PostProcess removes banned jargon from the free-text fields of a and tidies
// the punctuation left behind. A value that would become empty is kept as is
// so the article's structure never shrinks.
func PostProcess(a *Article) {
	for i := range a.Sections {
		cleanAll(a.Sections[i].Paragraphs)
	}
	a.Conclusion = cleanKeep(a.Conclusion)
	a.QuickAnswer = cleanKeep(a.QuickAnswer)
	a.Excerpt = cleanKeep(a.Excerpt)
	a.SEODescription = cleanKeep(a.SEODescription)
	cleanAll(a.KeyTakeaways)
	for i := range a.FAQ {
		a.FAQ[i].Answer = cleanKeep(a.FAQ[i].Answer)
	}
}

// CleanText applies the banned-phrase filter to a single string.
func CleanText(text string) string {
	for _, word := range bannedPhrases {
		text = strings.ReplaceAll(text, word, "")
	}
	text = repeatedCommas.ReplaceAllString(text, "，")
	text = repeatedEnumera.ReplaceAllString(text, "、")
	text = leadingPunct.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func cleanKeep(text string) string {
	if cleaned := CleanText(text); cleaned != "" {
		return cleaned
	}
	return text
}

func cleanAll(items []string) {
	for i, item := range items {
		items[i] = cleanKeep(item)
	}
}
