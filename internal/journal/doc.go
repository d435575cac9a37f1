// Package journal parses journalctl output and aggregates a service's log
// into a Store indexed by severity (1 most urgent, 7 least).
//
// Each severity is queried separately with an exact priority range, so an
// entry appears under at most one severity. Within a severity entries keep
// journalctl's reverse chronological order.
package journal
