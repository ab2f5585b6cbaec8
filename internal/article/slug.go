package article

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/width"
)

const maxSlugLength = 80

var (
	// SlugPattern is the shape every generated slug satisfies.
	SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	slugSegmentPattern = regexp.MustCompile(`[a-zA-Z0-9]+|[\x{4e00}-\x{9fff}]+`)
	asciiSegment       = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// Slugify romanises Han characters with pinyin, keeps ASCII letters and
// digits, and joins the tokens with hyphens. Text without any usable
// characters gets a stable hash-based slug.
func Slugify(text string) string {
	cleaned := width.Fold.String(strings.TrimSpace(text))

	args := pinyin.NewArgs()
	var tokens []string
	for _, segment := range slugSegmentPattern.FindAllString(cleaned, -1) {
		if asciiSegment.MatchString(segment) {
			tokens = append(tokens, strings.ToLower(segment))
			continue
		}
		for _, syllable := range pinyin.LazyPinyin(segment, args) {
			if token := keepSlugChars(syllable); token != "" {
				tokens = append(tokens, token)
			}
		}
	}

	result := strings.Join(tokens, "-")
	if len(result) > maxSlugLength {
		result = strings.TrimRight(result[:maxSlugLength], "-")
	}
	if result == "" {
		return fallbackSlug(text)
	}
	return result
}

func keepSlugChars(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fallbackSlug(text string) string {
	h := fnv.New32a()
	h.Write([]byte(text))
	return fmt.Sprintf("article-%08x", h.Sum32())
}
