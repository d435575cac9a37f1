package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/nav"
	"github.com/five82/rounal/internal/systemd"
)

// renderMain renders the header, tabs, list and info line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderColumns())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderInfoLine())
	return b.String()
}

// renderTabs renders the list tabs while browsing and the severity tabs
// while reading logs.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	var tabs []string

	if !m.state.InLogs() {
		for _, v := range []nav.View{nav.ViewUnits, nav.ViewUnitFiles} {
			if v == m.state.View() {
				tabs = append(tabs, styles.ActiveTab.Render(v.String()))
			} else {
				tabs = append(tabs, styles.InactiveTab.Render(v.String()))
			}
		}
		return lipgloss.NewStyle().Width(m.width).Render(strings.Join(tabs, " "))
	}

	tabs = append(tabs, styles.AccentText.Bold(true).Render(m.state.SelectedService()))
	logs := m.state.Logs()
	for sev := journal.MinSeverity; sev <= journal.MaxSeverity; sev++ {
		label := fmt.Sprintf("%d %s", sev, journal.SeverityName(sev))
		if logs != nil && logs.Has(sev) {
			label += fmt.Sprintf(" (%d)", logs.Len(sev))
		}
		if sev == m.state.Severity() {
			tab := styles.ActiveTab.Background(lipgloss.Color(m.theme.SeverityColor(sev)))
			tabs = append(tabs, tab.Render(label))
		} else {
			tabs = append(tabs, styles.SeverityStyle(sev).Padding(0, 1).Render(label))
		}
	}
	return lipgloss.NewStyle().Width(m.width).Render(truncateANSI(strings.Join(tabs, " "), m.width))
}

type unitColumns struct{ name, load, active, sub, desc int }

func (m Model) unitColumns() unitColumns {
	w := max(m.width-2, 20)
	c := unitColumns{load: 10, active: 10, sub: 13}
	if m.width < LayoutCompactWidth {
		c.load = 0
	}
	c.name = max(w*35/100, 16)
	c.desc = max(w-c.name-c.load-c.active-c.sub, 0)
	return c
}

type fileColumns struct{ name, state, preset int }

func (m Model) fileColumns() fileColumns {
	w := max(m.width-2, 20)
	c := fileColumns{state: 17, preset: 10}
	c.name = max(w-c.state-c.preset, 16)
	return c
}

type logColumns struct{ ts, host, service, msg int }

func (m Model) logColumns() logColumns {
	w := max(m.width-2, 20)
	c := logColumns{ts: 20, service: 22}
	if m.width >= LayoutWideWidth {
		c.host = 16
	}
	c.msg = max(w-c.ts-c.host-c.service, 10)
	return c
}

func (m Model) renderColumns() string {
	style := m.theme.Styles().MutedText.Bold(true)
	var row string
	switch {
	case m.state.InLogs():
		c := m.logColumns()
		row = cell("TIMESTAMP", c.ts) + cell("HOST", c.host) + cell("SERVICE", c.service) + "MESSAGE"
	case m.state.View() == nav.ViewUnitFiles:
		c := m.fileColumns()
		row = cell("UNIT FILE", c.name) + cell("STATE", c.state) + "PRESET"
	default:
		c := m.unitColumns()
		row = cell("UNIT", c.name) + cell("LOAD", c.load) + cell("ACTIVE", c.active) + cell("SUB", c.sub) + "DESCRIPTION"
	}
	return style.Render(truncate("  "+row, m.width))
}

// renderBody renders exactly listHeight rows.
func (m Model) renderBody() string {
	height := m.listHeight()
	lines := m.bodyLines(height)
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) bodyLines(height int) []string {
	if placeholder := m.placeholder(); placeholder != "" {
		return []string{"", "  " + placeholder}
	}

	cursor := m.state.Cursor()
	start, end := window(cursor, m.state.Len(), height)
	lines := make([]string, 0, end-start)
	if m.state.InLogs() {
		for i, e := range m.state.Logs().Entries(m.state.Severity(), start, end) {
			plain, styled := m.logRow(e)
			lines = append(lines, m.decorateRow(plain, styled, start+i == cursor))
		}
		return lines
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, i == cursor))
	}
	return lines
}

// placeholder explains an empty list, or returns "" when there are rows.
func (m Model) placeholder() string {
	styles := m.theme.Styles()
	if m.state.Len() > 0 {
		return ""
	}
	if m.state.InLogs() {
		switch {
		case m.state.Loading():
			return m.spinner.View() + " " + styles.MutedText.Render("Loading logs for "+m.state.SelectedService()+"...")
		case m.state.Logs() == nil && m.state.Message() != "":
			return styles.DangerText.Render(m.state.Message())
		default:
			sev := m.state.Severity()
			return styles.MutedText.Render(fmt.Sprintf("No entries at severity %d (%s)", sev, journal.SeverityName(sev)))
		}
	}
	if msg := m.state.Message(); msg != "" {
		return styles.DangerText.Render(msg)
	}
	return styles.MutedText.Render("No services found")
}

func (m Model) renderRow(i int, selected bool) string {
	var plain string
	var styled string

	if m.state.View() == nav.ViewUnitFiles {
		plain, styled = m.unitFileRow(m.state.UnitFiles()[i])
	} else {
		plain, styled = m.unitRow(m.state.Units()[i])
	}
	return m.decorateRow(plain, styled, selected)
}

func (m Model) decorateRow(plain, styled string, selected bool) string {
	if selected {
		return m.theme.Styles().Selected.Width(m.width).Render(truncate("▶ "+plain, m.width))
	}
	return "  " + styled
}

func (m Model) unitRow(u systemd.ServiceUnit) (string, string) {
	styles := m.theme.Styles()
	c := m.unitColumns()

	name := cell(u.Name, c.name)
	load := cell(u.Load.String(), c.load)
	active := cell(u.Active.String(), c.active)
	sub := cell(u.Sub.String(), c.sub)
	desc := truncate(u.Description, c.desc)

	activeStyle := styles.MutedText
	if u.Active == systemd.ActiveActive {
		activeStyle = styles.SuccessText
	}
	subStyle := styles.Text
	switch u.Sub {
	case systemd.SubFailed:
		subStyle = styles.DangerText
	case systemd.SubRunning:
		subStyle = styles.SuccessText
	case systemd.SubActivating, systemd.SubDeactivating, systemd.SubReloading:
		subStyle = styles.WarningText
	}
	loadStyle := styles.MutedText
	if u.Load == systemd.LoadNotFound {
		loadStyle = styles.WarningText
	}

	plain := name + load + active + sub + desc
	styled := styles.Text.Render(name) + loadStyle.Render(load) + activeStyle.Render(active) +
		subStyle.Render(sub) + styles.MutedText.Render(desc)
	return plain, styled
}

func (m Model) unitFileRow(f systemd.ServiceUnitFile) (string, string) {
	styles := m.theme.Styles()
	c := m.fileColumns()

	name := cell(f.Name, c.name)
	st := cell(f.State.String(), c.state)
	preset := f.Preset.String()

	stateStyle := styles.MutedText
	switch f.State {
	case systemd.FileEnabled, systemd.FileEnabledRuntime:
		stateStyle = styles.SuccessText
	case systemd.FileMasked:
		stateStyle = styles.DangerText
	case systemd.FileStatic, systemd.FileAlias, systemd.FileIndirect, systemd.FileGenerated, systemd.FileTransient:
		stateStyle = styles.InfoText
	}

	plain := name + st + preset
	styled := styles.Text.Render(name) + stateStyle.Render(st) + styles.MutedText.Render(preset)
	return plain, styled
}

func (m Model) logRow(e journal.LogEntry) (string, string) {
	styles := m.theme.Styles()
	c := m.logColumns()

	ts := cell(e.Timestamp, c.ts)
	host := cell(e.Hostname, c.host)
	service := cell(e.Service, c.service)
	msg := truncate(e.Message, c.msg)

	plain := ts + host + service + msg
	styled := styles.MutedText.Render(ts) + styles.FaintText.Render(host) +
		styles.AccentText.Render(service) + styles.SeverityStyle(e.Severity).Render(msg)
	return plain, styled
}

// renderInfoLine renders the bottom line: help hint or the search box on
// the left, the latest message on the right.
func (m Model) renderInfoLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var left string
	if m.state.Searching() {
		left = bg.Render("SEARCH MODE:", styles.WarningText.Bold(true)) + bg.Spaces(1) + m.search.View()
		if q := m.search.Value(); strings.TrimSpace(q) != "" {
			left += bg.Spaces(2) + bg.Render(fmt.Sprintf("%d matches", m.state.MatchCount(q)), styles.FaintText)
		}
	} else {
		left = bg.Render("Press [?] for help", styles.MutedText)
		if q := strings.TrimSpace(m.state.Query()); q != "" {
			left += bg.Spaces(2) + bg.Render("search:", styles.FaintText) + bg.Spaces(1) + bg.Render(q, styles.AccentText)
		}
		if n := m.state.Len(); n > 0 {
			left += bg.Spaces(2) + bg.Render(fmt.Sprintf("%d/%d", m.state.Cursor()+1, n), styles.FaintText)
		}
	}

	var right string
	if msg := m.state.Message(); msg != "" && !m.state.Searching() {
		room := m.width - lipgloss.Width(left) - 4
		if room > 10 {
			right = bg.Render(truncate(msg, room), styles.InfoText)
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return bg.FillLine(bg.Spaces(1)+left+bg.Spaces(gap)+right, m.width)
}
