package ui

import (
	"maps"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/rounal/internal/journal"
)

// Theme is a named palette. Severity colors are keyed 1 (alert) to
// 7 (debug) and may be overridden from the config file.
type Theme struct {
	Name string

	Background    string // behind modals
	Surface       string // header and info line
	Selection     string // cursor row
	SelectionText string
	Border        string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	SeverityColors map[int]string
}

// WithSeverityColors returns a copy of t with overrides layered over its
// own severity colors. Out of range severities and empty colors are ignored.
func (t Theme) WithSeverityColors(overrides map[int]string) Theme {
	if len(overrides) == 0 {
		return t
	}
	colors := maps.Clone(t.SeverityColors)
	if colors == nil {
		colors = make(map[int]string, len(overrides))
	}
	for sev, color := range overrides {
		if sev >= journal.MinSeverity && sev <= journal.MaxSeverity && color != "" {
			colors[sev] = color
		}
	}
	t.SeverityColors = colors
	return t
}

// SeverityColor returns the color for severity, falling back to Muted.
func (t Theme) SeverityColor(severity int) string {
	if c := t.SeverityColors[severity]; c != "" {
		return c
	}
	return t.Muted
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Logo        lipgloss.Style
	Selected    lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	severityColors map[int]string
	muted          string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Logo: fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).
			Background(lipgloss.Color(t.Selection)),
		ActiveTab: fg(t.Background).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),
		InactiveTab: fg(t.Muted).Padding(0, 1),

		severityColors: t.SeverityColors,
		muted:          t.Muted,
	}
}

// SeverityStyle returns the foreground style for entries of severity.
// Alert and crit are bold.
func (s Styles) SeverityStyle(severity int) lipgloss.Style {
	color := s.severityColors[severity]
	if color == "" {
		color = s.muted
	}
	return fg(color).Bold(severity <= 2)
}

// WithBackground paints every text style on bg so styled runs inside a
// colored bar do not punch holes through it. Selected and ActiveTab keep
// their own backgrounds.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, style := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Logo, &s.InactiveTab,
	} {
		*style = style.Background(bg)
	}
	return s
}

var themeOrder = []string{"Dracula", "Nord", "Slate"}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Nord":    nordTheme(),
	"Slate":   slateTheme(),
}

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the theme after current in the T cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists the built-in themes in cycle order.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// https://draculatheme.com/spec
	return Theme{
		Name:          "Dracula",
		Background:    "#191A21",
		Surface:       "#282A36",
		Selection:     "#44475A",
		SelectionText: "#F8F8F2",
		Border:        "#6272A4",

		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",

		SeverityColors: map[int]string{
			1: "#FF5555",
			2: "#FF79C6",
			3: "#FF6E6E",
			4: "#FFB86C",
			5: "#F1FA8C",
			6: "#8BE9FD",
			7: "#6272A4",
		},
	}
}

func nordTheme() Theme {
	// https://www.nordtheme.com/docs/colors-and-palettes
	return Theme{
		Name:          "Nord",
		Background:    "#242933",
		Surface:       "#2E3440", // nord0
		Selection:     "#434C5E", // nord2
		SelectionText: "#ECEFF4", // nord6
		Border:        "#4C566A", // nord3

		Text:    "#D8DEE9", // nord4
		Muted:   "#7B88A1",
		Faint:   "#4C566A",
		Accent:  "#88C0D0", // nord8
		Success: "#A3BE8C", // nord14
		Warning: "#EBCB8B", // nord13
		Danger:  "#BF616A", // nord11
		Info:    "#81A1C1", // nord9

		SeverityColors: map[int]string{
			1: "#BF616A",
			2: "#B48EAD",
			3: "#D08770",
			4: "#EBCB8B",
			5: "#A3BE8C",
			6: "#88C0D0",
			7: "#7B88A1",
		},
	}
}

func slateTheme() Theme {
	// Tailwind slate and sky scales.
	return Theme{
		Name:          "Slate",
		Background:    "#020617", // slate-950
		Surface:       "#0f172a", // slate-900
		Selection:     "#0369a1", // sky-700
		SelectionText: "#f8fafc", // slate-50
		Border:        "#334155", // slate-700

		Text:    "#e2e8f0", // slate-200
		Muted:   "#94a3b8", // slate-400
		Faint:   "#475569", // slate-600
		Accent:  "#38bdf8", // sky-400
		Success: "#4ade80", // green-400
		Warning: "#fbbf24", // amber-400
		Danger:  "#f87171", // red-400
		Info:    "#22d3ee", // cyan-400

		SeverityColors: map[int]string{
			1: "#dc2626",
			2: "#db2777",
			3: "#f87171",
			4: "#fbbf24",
			5: "#facc15",
			6: "#22d3ee",
			7: "#64748b",
		},
	}
}
