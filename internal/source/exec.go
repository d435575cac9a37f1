package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultSystemctl  = "systemctl"
	defaultJournalctl = "journalctl"
)

// ExecOptions configure an ExecAdapter.
type ExecOptions struct {
	// Sudo prefixes journal queries with "sudo -n" so unreadable journals
	// fail fast instead of prompting on the terminal the UI owns.
	Sudo       bool
	Systemctl  string // empty uses "systemctl" from PATH
	Journalctl string // empty uses "journalctl" from PATH
	Logger     *zap.Logger
}

// ExecAdapter runs systemctl and journalctl as child processes.
type ExecAdapter struct {
	sudo       bool
	systemctl  string
	journalctl string
	logger     *zap.Logger
}

var _ Adapter = (*ExecAdapter)(nil)

// NewExecAdapter builds an adapter from opts, filling in defaults.
func NewExecAdapter(opts ExecOptions) *ExecAdapter {
	a := &ExecAdapter{
		sudo:       opts.Sudo,
		systemctl:  strings.TrimSpace(opts.Systemctl),
		journalctl: strings.TrimSpace(opts.Journalctl),
		logger:     opts.Logger,
	}
	if a.systemctl == "" {
		a.systemctl = defaultSystemctl
	}
	if a.journalctl == "" {
		a.journalctl = defaultJournalctl
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Command returns the program and arguments used for q.
func (a *ExecAdapter) Command(q Query) (string, []string, error) {
	switch q.Category {
	case CategoryListUnits:
		return a.systemctl, []string{"list-units", "--type=service", "--all", "--no-pager"}, nil
	case CategoryListUnitFiles:
		return a.systemctl, []string{"list-unit-files", "--type=service", "--all", "--no-pager"}, nil
	case CategoryLogs:
		if strings.TrimSpace(q.Service) == "" {
			return "", nil, fmt.Errorf("logs query requires a service")
		}
		args := []string{"-u", q.Service, "-r", "-p", PriorityRange(q.Severity), "--no-pager"}
		if a.sudo {
			return "sudo", append([]string{"-n", a.journalctl}, args...), nil
		}
		return a.journalctl, args, nil
	default:
		return "", nil, fmt.Errorf("unsupported query category %s", q.Category)
	}
}

// PriorityRange renders the journalctl priority filter selecting exactly one
// severity. Severity 1 also covers emergencies (priority 0).
func PriorityRange(severity int) string {
	if severity <= 1 {
		return "0..1"
	}
	n := strconv.Itoa(severity)
	return n + ".." + n
}

// Run executes q. A command that starts but exits non-zero yields a
// Result with Success false and a nil error.
func (a *ExecAdapter) Run(ctx context.Context, q Query) (Result, error) {
	name, args, err := a.Command(q)
	if err != nil {
		return Result{}, &ExecError{Query: q, Err: err}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	a.logger.Debug("query finished",
		zap.Stringer("query", q),
		zap.String("cmd", name),
		zap.Strings("args", args),
		zap.Duration("took", time.Since(start)),
		zap.Error(runErr),
	)

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, &ExecError{Query: q, Err: ctxErr}
		}
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return Result{}, &ExecError{Query: q, Err: runErr}
		}
	}

	return Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Success: runErr == nil,
	}, nil
}
