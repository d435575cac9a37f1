package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/rounal/internal/clipboard"
	"github.com/five82/rounal/internal/config"
	"github.com/five82/rounal/internal/hostinfo"
	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/logging"
	"github.com/five82/rounal/internal/source"
	"github.com/five82/rounal/internal/state"
	"github.com/five82/rounal/internal/systemd"
	"github.com/five82/rounal/internal/ui"
)

const hostInfoTimeout = 2 * time.Second

// Options override values from the config file. Zero values keep the
// configured setting.
type Options struct {
	ConfigPath string
	Severity   int
	LogFile    string
	LogLevel   string
	Sudo       *bool
	Source     string
	PollEvery  time.Duration
}

// Run boots the rounal TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = applyOverrides(cfg, opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	logger.Info("starting rounal",
		zap.String("config", cfg.Path),
		zap.String("source", cfg.Source),
		zap.Bool("sudo", cfg.Sudo),
		zap.Int("default_severity", cfg.DefaultSeverity),
		zap.Duration("poll_interval", cfg.PollInterval))

	adapter := newAdapter(cfg, logger)
	loader := systemd.NewLoader(adapter, logger)
	store := &state.Store{}

	// A failed first load is shown in the UI; the user can retry with r.
	catalog, loadErr := refresh(ctx, store, loader, logger)

	StartPoller(ctx, store, loader, cfg.PollInterval, logger)

	updates, err := config.Watch(ctx, cfg.Path, logger)
	if err != nil {
		logger.Warn("config hot reload disabled", zap.Error(err))
	}

	hostCtx, cancel := context.WithTimeout(ctx, hostInfoTimeout)
	host, err := hostinfo.Fetch(hostCtx)
	cancel()
	if err != nil {
		logger.Warn("host info unavailable", zap.Error(err))
	}

	err = ui.Run(ui.Options{
		Context:    ctx,
		Catalog:    catalog,
		CatalogErr: loadErr,
		Logs:       journal.NewAggregator(adapter, logger),
		Refresh: func(ctx context.Context) (systemd.Catalog, error) {
			return refresh(ctx, store, loader, logger)
		},
		Store:         store,
		Clipboard:     clipboard.System{},
		Config:        cfg,
		ConfigUpdates: updates,
		Host:          host,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("ui exited with error", zap.Error(err))
		return err
	}
	logger.Info("rounal stopped")
	return nil
}

// applyOverrides layers command-line options on top of the loaded config.
func applyOverrides(cfg config.Config, opts Options) (config.Config, error) {
	if opts.Severity != 0 {
		if opts.Severity < journal.MinSeverity || opts.Severity > journal.MaxSeverity {
			return cfg, fmt.Errorf("invalid severity %d (want %d-%d)", opts.Severity, journal.MinSeverity, journal.MaxSeverity)
		}
		cfg.DefaultSeverity = opts.Severity
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Sudo != nil {
		cfg.Sudo = *opts.Sudo
	}
	switch opts.Source {
	case "":
	case config.SourceExec, config.SourceDBus:
		cfg.Source = opts.Source
	default:
		return cfg, fmt.Errorf("invalid source %q (want %s or %s)", opts.Source, config.SourceExec, config.SourceDBus)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	return cfg, nil
}

// newAdapter builds the command source. Journal queries always run
// journalctl; the dbus source only replaces the listings.
func newAdapter(cfg config.Config, logger *zap.Logger) source.Adapter {
	execAdapter := source.NewExecAdapter(source.ExecOptions{
		Sudo:   cfg.Sudo,
		Logger: logger,
	})
	if cfg.Source == config.SourceDBus {
		return source.NewDBusAdapter(execAdapter, logger)
	}
	return execAdapter
}
