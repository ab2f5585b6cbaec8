package render

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	anchorStrip  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s-]`)
	anchorSpaces = regexp.MustCompile(`[\s_]+`)
	anchorDashes = regexp.MustCompile(`-{2,}`)
)

// MakeAnchorID returns "section-N" or "section-N-<token>" for the section at
// zero-based index. The token keeps letters and digits of any script and is
// cut to 30 runes.
func MakeAnchorID(title string, index int) string {
	token := norm.NFKC.String(title)
	token = strings.ToLower(strings.TrimSpace(anchorStrip.ReplaceAllString(token, " ")))
	token = anchorSpaces.ReplaceAllString(token, "-")
	token = strings.Trim(anchorDashes.ReplaceAllString(token, "-"), "-")
	if token == "" {
		return fmt.Sprintf("section-%d", index+1)
	}
	if r := []rune(token); len(r) > 30 {
		token = string(r[:30])
	}
	return fmt.Sprintf("section-%d-%s", index+1, token)
}
