package handlers

import (
	"aineoo/internal/logger"
	"aineoo/internal/pipeline"
	"aineoo/internal/quality"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("8"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// scoreStyle colours a score by grade band
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= quality.DefaultMinScore:
		return goodStyle
	case score >= 60:
		return warnStyle
	default:
		return badStyle
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// printRunReport prints the summary of one publish or dry run
func printRunReport(w io.Writer, res *pipeline.Result) {
	var lines []string
	if res.DryRun {
		lines = append(lines, titleStyle.Render("👀 Dry run complete"))
	} else {
		lines = append(lines, titleStyle.Render("✅ Published"))
	}
	lines = append(lines,
		"",
		row("Title", res.Title),
		row("Slug", res.Slug),
	)
	if res.Link != "" {
		lines = append(lines, row("Link", res.Link), row("Post", fmt.Sprintf("#%d (%s)", res.PostID, res.Status)))
	}
	if res.PreviewFile != "" {
		lines = append(lines, row("Preview", res.PreviewFile))
	}
	lines = append(lines, row("Assets", res.AssetDir))

	if res.Quality != nil {
		q := res.Quality
		lines = append(lines, row("Quality", scoreStyle(q.Score).Render(fmt.Sprintf("%d/100", q.Score))+" "+q.Grade))
		if keys := q.FailedKeys(); len(keys) > 0 {
			lines = append(lines, row("Failed checks", strings.Join(keys, ", ")))
		}
	}

	media := fmt.Sprintf("%d uploaded", res.MediaCount)
	if res.HasVideo {
		media += ", video"
	}
	if res.HasAvatar {
		media += ", avatar"
	}
	lines = append(lines,
		row("Media", media),
		row("Taxonomy", fmt.Sprintf("%d categories, %d tags", len(res.CategoryIDs), len(res.TagIDs))),
		row("Related posts", fmt.Sprintf("%d", res.RelatedCount)),
		row("Content source", res.ContentSource),
	)
	if res.Verify != nil {
		verdict := goodStyle.Render("ok")
		if !res.Verify.OK {
			verdict = badStyle.Render("failed")
		}
		lines = append(lines, row("Live check", verdict))
	}
	if len(res.Warnings) > 0 {
		lines = append(lines, row("Warnings", warnStyle.Render(fmt.Sprintf("%d", len(res.Warnings)))))
		for _, w := range res.Warnings {
			lines = append(lines, "  • "+w)
		}
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// printFailure prints a one-line diagnostic that points at the debug log
func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", badStyle.Render("❌"), err)
	if pipeline.IsQualityError(err) {
		fmt.Fprintf(w, "   hint: lower --min-quality or drop --strict-quality to publish anyway\n")
	}
	if path := logger.FilePath(); path != "" {
		fmt.Fprintf(w, "   details: %s\n", path)
	}
}
