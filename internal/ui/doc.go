// Package ui is the Bubble Tea front end of rounal.
//
// # Architecture
//
// Model owns the widgets (search box, spinner, docs viewport) and the
// theme. Every interaction decision lives in nav.State: keys are mapped to
// nav actions by keyMap.actionFor, applied to the state, and any returned
// nav.Effect is turned into a tea.Cmd by Model.run. Background results
// come back as messages that are in turn applied as actions, so the UI
// never mutates lists or the cursor directly.
//
// # Screens
//
//   - Browsing: the "Service units" and "Service unit files" lists, switched
//     with tab or h/l.
//   - Logs: the journal of the selected service, one tab per severity 1..7.
//   - Overlays: help (?), usage docs (d) and row details (i). They stack
//     independently and esc closes the topmost.
//
// # Background data
//
//   - Log fetches are tagged with the nav generation; stale results are
//     dropped by the state machine.
//   - When a state.Store is supplied, a one second tick picks up catalogs
//     published by the app poller and flags a degraded catalog.
//   - Config reloads arrive on Options.ConfigUpdates and swap the theme,
//     the severity palette and the default severity.
package ui
