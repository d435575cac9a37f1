// Package source runs the external queries rounal depends on.
//
// Three query categories exist: the service unit listing, the service unit
// file listing, and a journal query for one service at one severity. Callers
// see only the Adapter interface and a Result carrying stdout, stderr and a
// success flag, so tests can substitute a Func.
//
// ExecAdapter shells out to systemctl and journalctl. DBusAdapter talks to
// systemd over D-Bus for the two listings and formats them in systemctl's
// column layout, delegating journal queries to another adapter.
//
// Two error types distinguish failure modes:
//
//   - *ExecError: the query could not be started (missing binary, no bus,
//     cancelled context).
//   - *FailureError: the query ran and reported failure; it carries stderr.
//     Adapters return this as Result{Success: false}; Result.Err converts.
package source
