package article

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	fieldPattern       = regexp.MustCompile(`([^\s:：；;\n]{1,20})\s*[：:]\s*([^；;\n]+)`)
	clauseSplitPattern = regexp.MustCompile(`[；;\n。]`)
	themePrefixPattern = regexp.MustCompile(`(?i)^(主题|theme|topic)\s*[：:]\s*`)
)

// PromptContext holds the fields extracted from a templated prompt.
type PromptContext struct {
	Theme  string
	Raw    string
	Fields map[string]string
}

// ParsePromptContext extracts "key：value" fields from prompt. The theme is the
// 主题/theme/topic field, or else the first clause of the prompt.
func ParsePromptContext(prompt string) PromptContext {
	text := strings.TrimSpace(prompt)
	ctx := PromptContext{Raw: text, Fields: map[string]string{}}
	if text == "" {
		return ctx
	}

	for _, m := range fieldPattern.FindAllStringSubmatch(text, -1) {
		ctx.Fields[strings.ToLower(strings.TrimSpace(m[1]))] = strings.TrimSpace(m[2])
	}

	theme := firstNonEmpty(ctx.Fields["主题"], ctx.Fields["theme"], ctx.Fields["topic"])
	if theme == "" {
		first := strings.TrimSpace(clauseSplitPattern.Split(text, 2)[0])
		theme = themePrefixPattern.ReplaceAllString(first, "")
	}
	ctx.Theme = strings.TrimSpace(theme)
	return ctx
}

// DetectIntent classifies text by keyword. The first matching intent in
// tutorial, comparison, listicle, risk order wins.
func DetectIntent(text string) Intent {
	lowered := strings.ToLower(text)
	for _, intent := range Intents {
		for _, word := range intentKeywords[intent] {
			if strings.Contains(lowered, strings.ToLower(word)) {
				return intent
			}
		}
	}
	return IntentDefault
}

// ordSum is the sum of the code points of s. Template selection, palettes
// and image seeds are all derived from it.
func ordSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

// Seed returns the deterministic image seed base for s, in [0, 2^31-1).
func Seed(s string) int64 {
	return int64(ordSum(s)) % 2147483647
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
