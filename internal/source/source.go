package source

import (
	"context"
	"fmt"
	"strings"
)

// Category identifies which external listing or log query to run.
type Category int

const (
	CategoryListUnits Category = iota
	CategoryListUnitFiles
	CategoryLogs
)

func (c Category) String() string {
	switch c {
	case CategoryListUnits:
		return "list-units"
	case CategoryListUnitFiles:
		return "list-unit-files"
	case CategoryLogs:
		return "logs"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Query describes one invocation of the external source. Service and
// Severity are only meaningful for CategoryLogs.
type Query struct {
	Category Category
	Service  string
	Severity int
}

func (q Query) String() string {
	if q.Category != CategoryLogs {
		return q.Category.String()
	}
	return fmt.Sprintf("logs(%s, severity %d)", q.Service, q.Severity)
}

// Result is the raw outcome of a query. Success mirrors the exit status of
// the underlying command.
type Result struct {
	Stdout  string
	Stderr  string
	Success bool
}

// Err returns a *FailureError for unsuccessful results and nil otherwise.
func (r Result) Err(q Query) error {
	if r.Success {
		return nil
	}
	return &FailureError{Query: q, Stderr: r.Stderr}
}

// Lines splits Stdout into lines, dropping the trailing empty line left by a
// final newline.
func (r Result) Lines() []string {
	out := strings.TrimRight(r.Stdout, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Adapter runs queries against the host. Implementations must be safe for
// concurrent use.
type Adapter interface {
	Run(ctx context.Context, q Query) (Result, error)
}

// Func adapts an ordinary function to the Adapter interface.
type Func func(ctx context.Context, q Query) (Result, error)

// Run calls f(ctx, q).
func (f Func) Run(ctx context.Context, q Query) (Result, error) {
	return f(ctx, q)
}

// ExecError reports that a query could not be started at all.
type ExecError struct {
	Query Query
	Err   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Query, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// FailureError reports a query that ran but exited unsuccessfully.
type FailureError struct {
	Query  Query
	Stderr string
}

func (e *FailureError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "exited with non-zero status"
	}
	return fmt.Sprintf("%s failed: %s", e.Query, msg)
}
