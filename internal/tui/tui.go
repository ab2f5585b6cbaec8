// Package tui is a terminal browser for generated articles.
package tui

import (
	"aineoo/internal/assets"
	"aineoo/internal/pipeline"
	"aineoo/internal/quality"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// model represents the state of the browser
type model struct {
	outputDir   string
	rows        []assets.Summary
	reports     map[string]quality.Report // re-scored on demand, keyed by slug
	status      string
	selectedIdx int
	width       int
	height      int
	quitting    bool
}

// rescoredMsg carries the result of re-scoring one article
type rescoredMsg struct {
	slug   string
	report quality.Report
	err    error
}

// InitialModel returns the browser state for rows found in outputDir.
func InitialModel(outputDir string, rows []assets.Summary) model {
	return model{
		outputDir: outputDir,
		rows:      rows,
		reports:   make(map[string]quality.Report),
		width:     100,
		height:    30,
	}
}

// Init is the first command that will be run. We don't need any for now.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case rescoredMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Re-score failed: %v", msg.err)
		} else {
			m.reports[msg.slug] = msg.report
			m.status = fmt.Sprintf("Re-scored %s: %d/100", msg.slug, msg.report.Score)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.rows)-1 {
				m.selectedIdx++
			}
		case "r", "enter":
			if row, ok := m.selected(); ok {
				m.status = "Scoring " + row.Slug + "..."
				return m, rescore(m.outputDir, row.Slug)
			}
		}
	}

	return m, nil
}

func (m model) selected() (assets.Summary, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.rows) {
		return assets.Summary{}, false
	}
	return m.rows[m.selectedIdx], true
}

// rescore loads the article from disk and scores it off the UI loop.
func rescore(outputDir, slug string) tea.Cmd {
	return func() tea.Msg {
		dir := assets.Open(outputDir, slug)
		a, err := dir.LoadArticle()
		if err != nil {
			return rescoredMsg{slug: slug, err: err}
		}
		rec, _ := dir.LoadResult()
		report, err := pipeline.Rescore(a, rec, time.Now())
		return rescoredMsg{slug: slug, report: report, err: err}
	}
}

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the TUI.
func (m model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	paneWidth := max(m.width/2-5, 20)
	listPane := paneStyle.Width(paneWidth).Render(m.listView())
	detailPane := paneStyle.Width(paneWidth).Render(m.detailView())
	main := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	help := dimStyle.Render("[↑/k] Up | [↓/j] Down | [r/enter] Re-score | [q] Quit")
	if m.status != "" {
		help = m.status + "\n" + help
	}
	return docStyle.Render(main + "\n\n" + help)
}

func (m model) listView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Articles (%d)\n\n", len(m.rows))
	if len(m.rows) == 0 {
		b.WriteString("No articles in " + m.outputDir)
		return b.String()
	}
	for i, r := range m.rows {
		line := fmt.Sprintf("%s %s", publishedMark(r), r.Slug)
		if i == m.selectedIdx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) detailView() string {
	r, ok := m.selected()
	if !ok {
		return "Nothing selected"
	}

	var b strings.Builder
	b.WriteString(selectedStyle.Render(r.Title) + "\n\n")
	fmt.Fprintf(&b, "Slug:      %s\n", r.Slug)
	fmt.Fprintf(&b, "Images:    %d\n", r.ImageCount)
	fmt.Fprintf(&b, "Video:     %t  Avatar: %t\n", r.HasVideo, r.HasAvatar)
	fmt.Fprintf(&b, "Published: %t\n", r.Published)
	if r.Link != "" {
		fmt.Fprintf(&b, "Link:      %s\n", r.Link)
	}
	if r.Score > 0 {
		fmt.Fprintf(&b, "Score:     %d/100 (stored)\n", r.Score)
	}
	fmt.Fprintf(&b, "Updated:   %s\n", r.UpdatedAt.Format("2006-01-02 15:04"))

	if report, ok := m.reports[r.Slug]; ok {
		fmt.Fprintf(&b, "\nQuality %d/100 (%s)\n", report.Score, report.Grade)
		for _, c := range report.Checks {
			if c.Passed {
				b.WriteString(passStyle.Render("✓ "+c.Name) + "\n")
			} else {
				b.WriteString(failStyle.Render("✗ "+c.Name) + dimStyle.Render(" "+c.Detail) + "\n")
			}
		}
	}
	return b.String()
}

func publishedMark(r assets.Summary) string {
	if r.Published {
		return "●"
	}
	return "○"
}

// StartTUI lists outputDir and runs the browser until the user quits.
func StartTUI(outputDir string) error {
	rows, err := assets.List(outputDir)
	if err != nil {
		return err
	}

	p := tea.NewProgram(InitialModel(outputDir, rows), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
