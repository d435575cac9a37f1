package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/nav"
)

type detailField struct {
	label string
	value string
}

// detailFields describes the row under the cursor.
func (m Model) detailFields() (string, []detailField) {
	cursor := m.state.Cursor()
	switch {
	case m.state.InLogs():
		e, ok := m.state.SelectedEntry()
		if !ok {
			return "", nil
		}
		return e.Label(), []detailField{
			{"Severity", fmt.Sprintf("%d (%s)", e.Severity, journal.SeverityName(e.Severity))},
			{"Timestamp", e.Timestamp},
			{"Host", e.Hostname},
			{"Service", e.Service},
			{"Message", e.Message},
		}
	case m.state.View() == nav.ViewUnitFiles:
		if cursor >= len(m.state.UnitFiles()) {
			return "", nil
		}
		f := m.state.UnitFiles()[cursor]
		return "Unit file", []detailField{
			{"Name", f.Name},
			{"State", f.State.String()},
			{"Preset", f.Preset.String()},
		}
	default:
		if cursor >= len(m.state.Units()) {
			return "", nil
		}
		u := m.state.Units()[cursor]
		return "Service unit", []detailField{
			{"Name", u.Name},
			{"Load", u.Load.String()},
			{"Active", u.Active.String()},
			{"Sub", u.Sub.String()},
			{"Description", u.Description},
		}
	}
}

// renderDetail renders the detail overlay for the selected row.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	title, fields := m.detailFields()
	if len(fields) == 0 {
		return m.renderMain()
	}

	width := max(min(m.width-10, 100), 30)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(13)
	valueStyle := styles.Text.Width(width - 4 - 13)
	if m.state.InLogs() {
		if e, ok := m.state.SelectedEntry(); ok {
			valueStyle = styles.SeverityStyle(e.Severity).Width(width - 4 - 13)
		}
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = "-"
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f.label), valueStyle.Render(value)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	hint := "j/k next row · i or esc close"
	if m.state.InLogs() {
		hint = "j/k next entry · y copy message · i or esc close"
	}
	b.WriteString(styles.FaintText.Render(hint))

	return m.renderModal(b.String(), width)
}
