// Package config loads rounal's TOML configuration.
//
// # Resolution
//
// Load reads the explicit path when given and ~/.config/rounal/config.toml
// otherwise. A missing file is not an error: Default values are used, so
// rounal works without any configuration. Blank values fall back to their
// defaults and tilde paths are expanded.
//
// # Format
//
//	default_severity = 4          # 1 (alert) .. 7 (debug)
//	theme = "Dracula"             # or "Slate"
//	log_level = "info"            # debug, info, warn, error, off
//	log_file = "~/.local/state/rounal/rounal.log"
//	poll_interval = 0             # seconds between catalog refreshes, 0 disables
//	sudo = false                  # run journalctl through "sudo -n"
//	source = "exec"               # exec or dbus
//
//	[severity_colors]
//	alert = "#FF5555"
//	warning = "#FFB86C"
//
// # Reloading
//
// Watch follows the file with fsnotify and delivers each valid revision on a
// channel. Invalid edits are logged and skipped, keeping the last good
// configuration in effect.
package config
