// Package nav is the interaction state machine behind the dashboard.
//
// State owns the active view, the cursor, overlay flags, search mode and the
// collections on screen. Every input, whether a key press or the result of a
// background job, is an Action passed to State.Apply, which mutates the
// state and may return an Effect for the caller to perform. The package does
// no I/O, so any sequence of actions can be replayed in tests.
//
// Two modes exist: browsing (service units or unit files) and viewing the
// logs of the selected service. Help, detail and docs overlays toggle
// independently of the mode. While searching, only search commit or cancel,
// quit, and background results are accepted.
//
// After every transition the cursor indexes the visible collection, or is 0
// when that collection is empty. Any change of collection resets it to 0.
package nav
