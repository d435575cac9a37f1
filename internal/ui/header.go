package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rounal/internal/systemd"
)

// renderHeader renders the top status bar: logo, host facts and counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("rounal", styles.Logo)}

	if summary := m.host.Summary(); summary != "" {
		if compact {
			summary = m.host.Hostname
		}
		parts = append(parts, bg.Render(summary, styles.MutedText))
	}

	parts = append(parts,
		bg.Render("Units:", styles.MutedText)+bg.Spaces(1)+
			bg.Render(fmt.Sprintf("%d", len(m.state.Units())), styles.Text),
		bg.Render("Files:", styles.MutedText)+bg.Spaces(1)+
			bg.Render(fmt.Sprintf("%d", len(m.state.UnitFiles())), styles.Text),
	)

	if failed := m.failedUnits(); failed > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("● %d failed", failed), styles.DangerText))
	}

	switch {
	case m.state.Refreshing():
		parts = append(parts, bg.Render("Refreshing...", styles.WarningText))
	case m.degraded:
		parts = append(parts, bg.Render("Catalog stale", styles.WarningText.Bold(true)))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.FillLine(" "+bg.Join(parts, "  "), m.width))
}

func (m Model) failedUnits() int {
	n := 0
	for _, u := range m.state.Units() {
		if u.Sub == systemd.SubFailed {
			n++
		}
	}
	return n
}
