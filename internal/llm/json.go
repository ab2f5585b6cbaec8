package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(\\{.*?\\})\\s*```")

// ErrNoJSONObject is returned when a completion carries no decodable object.
var ErrNoJSONObject = errors.New("no JSON object in completion")

// ExtractJSONBlock pulls the first JSON object out of model output. A fenced
// ```json block wins; otherwise the span from the first '{' to the last '}'
// is decoded. Arrays and scalars are rejected.
func ExtractJSONBlock(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoJSONObject
	}

	candidate := ""
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, ErrNoJSONObject
		}
		candidate = text[start : end+1]
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, errors.Join(ErrNoJSONObject, err)
	}
	if obj == nil {
		return nil, ErrNoJSONObject
	}
	return obj, nil
}
