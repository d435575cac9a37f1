package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which secondary columns are hidden.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show the hostname column in logs.
	LayoutWideWidth = 140
)

// Screen rows taken by fixed chrome: header, tabs, column header, info line.
const chromeRows = 4

// Timing constants.
const (
	// LogFetchTimeout bounds one journal aggregation.
	LogFetchTimeout = 30 * time.Second

	// CatalogFetchTimeout bounds one service catalog load.
	CatalogFetchTimeout = 15 * time.Second

	// DefaultUIInterval is how often the UI checks for background catalog updates.
	DefaultUIInterval = time.Second
)

// listHeight is the number of rows available to the main list.
func (m Model) listHeight() int {
	return max(m.height-chromeRows, 1)
}
