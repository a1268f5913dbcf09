package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/views"
)

func (m *Model) renderDashboard() string {
	summary := views.Aggregate(m.store.Snapshot())

	title := styles.title.Render("Dashboard")
	totals := fmt.Sprintf(
		"%d games tracked  •  %.1f hours played  •  %d%% completed",
		summary.Total, summary.TotalHours, summary.CompletionRate,
	)

	var counts []string
	for _, st := range models.Statuses {
		chip := lipgloss.NewStyle().Foreground(StatusColor(st)).Bold(true)
		counts = append(counts, chip.Render(fmt.Sprintf("%s %d", st.Label(), summary.ByStatus[st])))
	}

	var platforms strings.Builder
	platforms.WriteString(styles.ok.Render("Top Platforms") + "\n")
	if len(summary.TopPlatforms) == 0 {
		platforms.WriteString(styles.help.Render("  none selected yet") + "\n")
	}
	for _, p := range summary.TopPlatforms {
		platforms.WriteString(fmt.Sprintf("  %-20s %d\n", p.Platform, p.Count))
	}

	var recent strings.Builder
	recent.WriteString(styles.ok.Render("Recently Updated") + "\n")
	if len(summary.Recent) == 0 {
		recent.WriteString(styles.help.Render("  nothing yet") + "\n")
	}
	for _, e := range summary.Recent {
		mark := lipgloss.NewStyle().Foreground(StatusColor(e.Status)).Render("●")
		recent.WriteString(fmt.Sprintf("  %s %s (%s)\n", mark, truncate(e.Game.Title, 40), e.Status.Label()))
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n\n%s\n%s\n%s\n%s",
		title, totals,
		strings.Join(counts, "  "),
		platforms.String(), recent.String(),
		m.statusLine(), helpView,
	)
}
