package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/rounal/internal/nav"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Back       key.Binding
	Help       key.Binding
	Docs       key.Binding
	Detail     key.Binding
	CycleTheme key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Left         key.Binding
	Right        key.Binding
	SwitchView   key.Binding

	// Services
	Confirm key.Binding
	Refresh key.Binding

	// Logs
	Severity  key.Binding
	CloseLogs key.Binding
	Yank      key.Binding

	// Search
	Search key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close panel / quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Docs: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle docs"),
		),
		Detail: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Toggle detail"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Units / lower severity"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Unit files / higher severity"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch list"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Show logs"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh services"),
		),

		Severity: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "Select severity"),
		),
		CloseLogs: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Close logs"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy message"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel search"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.Left, k.Right, k.SwitchView, k.Confirm, k.Refresh},
		{k.Severity, k.CloseLogs, k.Yank},
		{k.Search, k.Detail, k.Docs},
		{k.CycleTheme, k.Help, k.Back, k.Quit},
	}
}

// actionFor maps a key press outside search mode to a navigation action.
// page is the number of rows a half-page jump moves.
func (k keyMap) actionFor(msg tea.KeyMsg, page int) (nav.Action, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return nav.Quit{}, true
	case key.Matches(msg, k.Back):
		return nav.Back{}, true
	case key.Matches(msg, k.Help):
		return nav.ToggleHelp{}, true
	case key.Matches(msg, k.Docs):
		return nav.ToggleDocs{}, true
	case key.Matches(msg, k.Detail):
		return nav.ToggleDetail{}, true
	case key.Matches(msg, k.Up):
		return nav.MoveUp{}, true
	case key.Matches(msg, k.Down):
		return nav.MoveDown{}, true
	case key.Matches(msg, k.Top):
		return nav.Top{}, true
	case key.Matches(msg, k.Bottom):
		return nav.Bottom{}, true
	case key.Matches(msg, k.HalfPageUp):
		return nav.Move{Delta: -max(page, 1)}, true
	case key.Matches(msg, k.HalfPageDown):
		return nav.Move{Delta: max(page, 1)}, true
	case key.Matches(msg, k.Left):
		return nav.Left{}, true
	case key.Matches(msg, k.Right):
		return nav.Right{}, true
	case key.Matches(msg, k.SwitchView):
		return nav.SwitchView{}, true
	case key.Matches(msg, k.Confirm):
		return nav.Confirm{}, true
	case key.Matches(msg, k.Refresh):
		return nav.Refresh{}, true
	case key.Matches(msg, k.Severity):
		sev, err := strconv.Atoi(msg.String())
		if err != nil {
			return nil, false
		}
		return nav.SetSeverity{Severity: sev}, true
	case key.Matches(msg, k.CloseLogs):
		return nav.CloseLogs{}, true
	case key.Matches(msg, k.Yank):
		return nav.Yank{}, true
	case key.Matches(msg, k.Search):
		return nav.StartSearch{}, true
	}
	return nil, false
}
