package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/rounal/internal/app"
)

// Build variables set by ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCommand(app.Run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rounal: %v\n", err)
		return 1
	}
	return 0
}

type runFunc func(ctx context.Context, opts app.Options) error

func newRootCommand(runApp runFunc) *cobra.Command {
	var (
		opts        app.Options
		sudo        bool
		pollSeconds int
	)

	root := &cobra.Command{
		Use:   "rounal",
		Short: "Terminal dashboard for systemctl and journalctl",
		Long: `rounal lists systemd service units and unit files and shows the journal
of a selected service split by syslog severity.

Settings are read from ~/.config/rounal/config.toml; flags override them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("sudo") {
				opts.Sudo = &sudo
			}
			if pollSeconds < 0 {
				return fmt.Errorf("invalid --poll %d (want seconds >= 0)", pollSeconds)
			}
			opts.PollEvery = time.Duration(pollSeconds) * time.Second
			return runApp(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default ~/.config/rounal/config.toml)")
	flags.IntVarP(&opts.Severity, "severity", "s", 0, "severity shown when logs open, 1 (alert) to 7 (debug)")
	flags.StringVar(&opts.LogFile, "log-file", "", "write diagnostics to this file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "diagnostic log level (debug, info, warn, error, off)")
	flags.BoolVar(&sudo, "sudo", false, "run journalctl through sudo -n")
	flags.StringVar(&opts.Source, "source", "", "unit listing source (exec or dbus)")
	flags.IntVar(&pollSeconds, "poll", 0, "reload the service catalog every N seconds (0 uses the config)")

	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := version
			if v == "dev" || v == "" {
				v = "development"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rounal %s (%s)\n", v, commit)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
