package source

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
	"go.uber.org/zap"
)

// unitLister is the subset of *dbus.Conn the adapter needs.
type unitLister interface {
	ListUnitsContext(ctx context.Context) ([]dbus.UnitStatus, error)
	ListUnitFilesContext(ctx context.Context) ([]dbus.UnitFile, error)
	Close()
}

// DBusAdapter lists units and unit files over the systemd D-Bus API and
// renders them in systemctl's column layout, so the same line parsers apply.
// Journal queries go to the fallback adapter.
type DBusAdapter struct {
	logs    Adapter
	connect func(ctx context.Context) (unitLister, error)
	logger  *zap.Logger
}

var _ Adapter = (*DBusAdapter)(nil)

// NewDBusAdapter returns an adapter that delegates log queries to logs.
func NewDBusAdapter(logs Adapter, logger *zap.Logger) *DBusAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBusAdapter{
		logs: logs,
		connect: func(ctx context.Context) (unitLister, error) {
			return dbus.NewWithContext(ctx)
		},
		logger: logger,
	}
}

// Run executes q. Listing errors reported by systemd become unsuccessful
// results; failing to reach the bus is an *ExecError.
func (a *DBusAdapter) Run(ctx context.Context, q Query) (Result, error) {
	if q.Category == CategoryLogs {
		if a.logs == nil {
			return Result{}, &ExecError{Query: q, Err: fmt.Errorf("no journal adapter configured")}
		}
		return a.logs.Run(ctx, q)
	}

	conn, err := a.connect(ctx)
	if err != nil {
		return Result{}, &ExecError{Query: q, Err: fmt.Errorf("connect to systemd: %w", err)}
	}
	defer conn.Close()

	switch q.Category {
	case CategoryListUnits:
		units, err := conn.ListUnitsContext(ctx)
		if err != nil {
			a.logger.Warn("list units over dbus failed", zap.Error(err))
			return Result{Stderr: err.Error()}, nil
		}
		return Result{Stdout: FormatUnits(units), Success: true}, nil
	case CategoryListUnitFiles:
		files, err := conn.ListUnitFilesContext(ctx)
		if err != nil {
			a.logger.Warn("list unit files over dbus failed", zap.Error(err))
			return Result{Stderr: err.Error()}, nil
		}
		return Result{Stdout: FormatUnitFiles(files), Success: true}, nil
	default:
		return Result{}, &ExecError{Query: q, Err: fmt.Errorf("unsupported query category %s", q.Category)}
	}
}

// FormatUnits renders service units the way "systemctl list-units" does:
// a header line followed by one row per unit. Failed units carry the
// leading marker glyph.
func FormatUnits(units []dbus.UnitStatus) string {
	services := make([]dbus.UnitStatus, 0, len(units))
	for _, u := range units {
		if strings.HasSuffix(u.Name, ".service") {
			services = append(services, u)
		}
	}
	slices.SortFunc(services, func(a, b dbus.UnitStatus) int {
		return strings.Compare(a.Name, b.Name)
	})

	var b strings.Builder
	b.WriteString("  UNIT LOAD ACTIVE SUB DESCRIPTION\n")
	for _, u := range services {
		marker := " "
		if u.ActiveState == "failed" || u.LoadState == "not-found" {
			marker = "●"
		}
		fmt.Fprintf(&b, "%s %s %s %s %s %s\n",
			marker, u.Name, u.LoadState, u.ActiveState, u.SubState, u.Description)
	}
	return b.String()
}

// FormatUnitFiles renders service unit files the way
// "systemctl list-unit-files" does. The bus does not report vendor presets,
// so the preset column reads "unknown".
func FormatUnitFiles(files []dbus.UnitFile) string {
	type row struct{ name, state string }
	rows := make([]row, 0, len(files))
	for _, f := range files {
		name := filepath.Base(f.Path)
		if !strings.HasSuffix(name, ".service") {
			continue
		}
		rows = append(rows, row{name: name, state: f.Type})
	}
	slices.SortFunc(rows, func(a, b row) int {
		return strings.Compare(a.name, b.name)
	})

	var b strings.Builder
	b.WriteString("UNIT FILE STATE PRESET\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s unknown\n", r.name, r.state)
	}
	return b.String()
}
