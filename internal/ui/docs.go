package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const docsMarkdown = `# rounal

Browse systemd services and read their journal, one **severity** at a time.

## Services

The first tab lists loaded service units with their *load*, *active* and
*sub* states. The second tab lists installed unit files with their enable
state and vendor preset. Press ` + "`tab`" + ` or ` + "`h`/`l`" + ` to switch.

Press ` + "`enter`" + ` on a service to open its journal. ` + "`r`" + ` reloads both lists.

## Logs

All seven severities are fetched at once with ` + "`journalctl -p N..N`" + `,
newest first:

1. alert (includes emerg)
2. crit
3. err
4. warning
5. notice
6. info
7. debug

Press a digit to jump to a severity, or ` + "`h`/`l`" + ` to step through them.
` + "`y`" + ` copies the selected message to the clipboard and ` + "`c`" + ` returns to the
service list.

## Search

Press ` + "`/`" + `, type a query and press ` + "`enter`" + `. Matching rows move to the
top of the current list in their original order; nothing is hidden. Matching
is case-insensitive against:

- services: name and description
- unit files: name
- log entries: timestamp and service

## Configuration

rounal reads ` + "`~/.config/rounal/config.toml`" + ` and reloads it when it changes:

    default_severity = 4
    theme = "Dracula"
    sudo = false

Set ` + "`sudo = true`" + ` to read journals of other users through ` + "`sudo -n`" + `.
`

// renderDocs re-renders the docs overlay for the current theme and size.
func (m *Model) renderDocs() {
	width, height := m.docsSize()
	m.docs.Width = width
	m.docs.Height = height
	m.docs.SetContent(renderMarkdown(docsMarkdown, m.theme, width))
}

func (m Model) docsSize() (int, int) {
	width := max(min(m.width-10, 90), 20)
	height := max(m.height-8, 5)
	return width, height
}

// handleDocsKey scrolls the docs overlay. It reports false for keys the
// overlay does not use.
func (m Model) handleDocsKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.docs.GotoTop()
		return m, nil, true
	case key.Matches(msg, m.keys.Bottom):
		m.docs.GotoBottom()
		return m, nil, true
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.HalfPageUp, m.keys.HalfPageDown):
		var cmd tea.Cmd
		m.docs, cmd = m.docs.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) renderDocsOverlay() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.docs.View())
	b.WriteString("\n\n")
	pct := int(m.docs.ScrollPercent() * 100)
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("j/k scroll · g/G top/bottom · d or esc close · %d%%", pct)))

	width, _ := m.docsSize()
	return m.renderModal(b.String(), width+6)
}
