// Package app is the composition root of rounal.
//
// Run wires the pieces together in this order:
//
//  1. config.Load, then command-line overrides
//  2. logging.New (file logger; the TUI owns the terminal)
//  3. the command source: exec, or dbus listings with exec for journals
//  4. systemd.Loader and a shared state.Store
//  5. one catalog load; a failure is shown in the UI instead of aborting
//  6. StartPoller when poll_interval is set
//  7. config.Watch for hot reload and hostinfo.Fetch for the header
//  8. ui.Run, which blocks until the user quits
//
// The poller publishes into the store and backs off exponentially while
// loads fail, capped at 30 seconds. The UI picks up new store versions on
// its own tick, so slow systemctl calls never block rendering.
package app
