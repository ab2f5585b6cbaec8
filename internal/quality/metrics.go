package quality

import (
	"fmt"
	"io"
	"strings"
)

// Check is one weighted SEO/content check.
type Check struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Weight int    `json:"weight"`
	Detail string `json:"detail"`
}

// Report is the outcome of evaluating a rendered article.
type Report struct {
	Score  int     `json:"score"` // 0-100
	Grade  string  `json:"grade"` // A/B/C/D
	Checks []Check `json:"checks"`
	Failed []Check `json:"failed"`
}

// FailedKeys returns the keys of failed checks in evaluation order.
func (r Report) FailedKeys() []string {
	keys := make([]string, 0, len(r.Failed))
	for _, c := range r.Failed {
		keys = append(keys, c.Key)
	}
	return keys
}

// GradeScore maps a score to a letter grade.
func GradeScore(score int) string {
	switch {
	case score >= 90:
		return "A - EXCELLENT"
	case score >= 75:
		return "B - GOOD"
	case score >= 60:
		return "C - FAIR"
	default:
		return "D - POOR"
	}
}

// Print writes a formatted quality report.
func (r Report) Print(w io.Writer) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "QUALITY REPORT: %d/100 (%s)\n", r.Score, r.Grade)
	fmt.Fprintln(w, line)
	for _, c := range r.Checks {
		mark := "✅"
		if !c.Passed {
			mark = "❌"
		}
		fmt.Fprintf(w, "%s %-12s %3d  %s\n", mark, c.Name, c.Weight, c.Detail)
	}

	if len(r.Failed) > 0 {
		fmt.Fprintln(w, "\n⚠️  FAILED CHECKS:")
		for _, c := range r.Failed {
			fmt.Fprintf(w, "  - %s (%s)\n", c.Name, c.Detail)
		}
	} else {
		fmt.Fprintln(w, "\n✅ No issues detected")
	}
	fmt.Fprintln(w, line)
}
