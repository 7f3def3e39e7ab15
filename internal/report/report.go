// Package report renders a scan result as an ANSI terminal table or JSON.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/yurukusa/cc-project-stats/pkg/models"
)

const (
	barWidth = 14

	// Projects with less total time than this are hidden as noise.
	minVisibleHours = 0.01

	maxNameWidth = 28
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	humanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	agentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	totalStyle   = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// visibleProjects drops sub-threshold rows; input is already ranked.
func visibleProjects(rep models.Report) []models.ProjectStats {
	return lo.Filter(rep.Projects, func(p models.ProjectStats, _ int) bool {
		return p.TotalHours() > minVisibleHours
	})
}

// WriteTable renders the human-readable report.
func WriteTable(w io.Writer, rep models.Report) error {
	_, err := io.WriteString(w, RenderTable(rep))
	return err
}

// RenderTable produces the full table as a string, so the TUI can reuse it.
func RenderTable(rep models.Report) string {
	projects := visibleProjects(rep)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Claude Code time by project — %s%s", rep.Period, windowSuffix(rep))))
	b.WriteString("\n\n")

	if len(projects) == 0 {
		b.WriteString(summaryStyle.Render(fmt.Sprintf("No activity found for %s.", rep.Period)))
		b.WriteString("\n")
		return b.String()
	}

	maxTotal := lo.MaxBy(projects, func(a, b models.ProjectStats) bool {
		return a.TotalHours() > b.TotalHours()
	}).TotalHours()

	nameWidth := nameColumnWidth(projects)
	for i, p := range projects {
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			rankStyle.Render(fmt.Sprintf("%3d.", i+1)),
			padName(p.Name, nameWidth),
			renderBar(p.HumanHours, p.AutonomousHours, maxTotal),
			hourColumns(p.HumanHours, p.AutonomousHours, p.TotalSessions()),
		))
	}

	totalHuman := lo.SumBy(projects, func(p models.ProjectStats) float64 { return p.HumanHours })
	totalAgent := lo.SumBy(projects, func(p models.ProjectStats) float64 { return p.AutonomousHours })
	totalSessions := lo.SumBy(projects, func(p models.ProjectStats) int { return p.TotalSessions() })

	b.WriteString(fmt.Sprintf("%s %s %s %s\n",
		strings.Repeat(" ", 4),
		totalStyle.Render(padName("all projects", nameWidth)),
		strings.Repeat(" ", barWidth),
		totalStyle.Render(hourColumns(totalHuman, totalAgent, totalSessions)),
	))

	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(topProjectSummary(projects[0], totalHuman+totalAgent)))
	b.WriteString("\n")
	return b.String()
}

func windowSuffix(rep models.Report) string {
	if rep.Cutoff == "" {
		return ""
	}
	return fmt.Sprintf(" (%s → %s)", rep.Cutoff, rep.Today)
}

func hourColumns(human, agent float64, sessionCount int) string {
	return fmt.Sprintf("%6.1fh human %6.1fh agent %6.1fh total  (%d sessions)",
		human, agent, human+agent, sessionCount)
}

// renderBar draws a two-color bar whose length is proportional to the row's
// share of the global maximum. Each color rounds independently; the agent
// segment is clamped when the pair would overflow the bar.
func renderBar(human, agent, maxTotal float64) string {
	humanCells, agentCells := barSegments(human, agent, maxTotal, barWidth)
	return humanStyle.Render(strings.Repeat("█", humanCells)) +
		agentStyle.Render(strings.Repeat("█", agentCells)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-humanCells-agentCells))
}

func barSegments(human, agent, maxTotal float64, width int) (int, int) {
	if maxTotal <= 0 {
		return 0, 0
	}
	humanCells := int(math.Round(float64(width) * human / maxTotal))
	agentCells := int(math.Round(float64(width) * agent / maxTotal))
	if humanCells > width {
		humanCells = width
	}
	if humanCells+agentCells > width {
		agentCells = width - humanCells
	}
	return humanCells, agentCells
}

func topProjectSummary(top models.ProjectStats, grandTotal float64) string {
	share := 0.0
	if grandTotal > 0 {
		share = top.TotalHours() / grandTotal * 100
	}
	lead := "mostly human-led"
	if top.AutonomousHours > top.HumanHours {
		lead = "mostly agent-driven"
	}
	return fmt.Sprintf("Top project: %s — %.0f%% of recorded time, %s.", top.Name, share, lead)
}

func nameColumnWidth(projects []models.ProjectStats) int {
	width := utf8.RuneCountInString("all projects")
	for _, p := range projects {
		if n := utf8.RuneCountInString(p.Name); n > width {
			width = n
		}
	}
	if width > maxNameWidth {
		width = maxNameWidth
	}
	return width
}

// padName truncates and pads by rune count; byte-based %-*s padding would
// misalign columns for multibyte project names.
func padName(name string, width int) string {
	name = truncateName(name, width)
	if pad := width - utf8.RuneCountInString(name); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	return name
}

func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width-1]) + "…"
}
