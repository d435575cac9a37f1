package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/rounal/internal/journal"
)

// Query sources.
const (
	SourceExec = "exec"
	SourceDBus = "dbus"
)

// Config is rounal's runtime configuration.
type Config struct {
	Path            string // resolved config file path, whether or not it exists
	DefaultSeverity int
	Theme           string
	LogLevel        string
	LogFile         string
	PollInterval    time.Duration // zero disables background refresh
	Sudo            bool
	Source          string
	SeverityColors  map[int]string
}

const (
	defaultConfigPath = "~/.config/rounal/config.toml"
	defaultLogFile    = "~/.local/state/rounal/rounal.log"
	defaultTheme      = "Dracula"
	defaultLogLevel   = "info"
)

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"off":   true,
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DefaultSeverity: journal.DefaultSeverity,
		Theme:           defaultTheme,
		LogLevel:        defaultLogLevel,
		LogFile:         mustExpand(defaultLogFile),
		Source:          SourceExec,
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DefaultSeverity int               `toml:"default_severity"`
		Theme           string            `toml:"theme"`
		LogLevel        string            `toml:"log_level"`
		LogFile         string            `toml:"log_file"`
		PollInterval    int               `toml:"poll_interval"`
		Sudo            bool              `toml:"sudo"`
		Source          string            `toml:"source"`
		SeverityColors  map[string]string `toml:"severity_colors"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.DefaultSeverity != 0 {
		cfg.DefaultSeverity = journal.ClampSeverity(raw.DefaultSeverity)
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		if !logLevels[level] {
			return Config{}, fmt.Errorf("invalid log_level %q", raw.LogLevel)
		}
		cfg.LogLevel = level
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if raw.PollInterval > 0 {
		cfg.PollInterval = time.Duration(raw.PollInterval) * time.Second
	}
	cfg.Sudo = raw.Sudo
	if src := strings.ToLower(strings.TrimSpace(raw.Source)); src != "" {
		if src != SourceExec && src != SourceDBus {
			return Config{}, fmt.Errorf("invalid source %q (want %s or %s)", raw.Source, SourceExec, SourceDBus)
		}
		cfg.Source = src
	}

	colors, err := parseSeverityColors(raw.SeverityColors)
	if err != nil {
		return Config{}, err
	}
	cfg.SeverityColors = colors

	return cfg, nil
}

func parseSeverityColors(raw map[string]string) (map[int]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	colors := make(map[int]string, len(raw))
	for name, color := range raw {
		sev := severityByName(strings.ToLower(strings.TrimSpace(name)))
		if sev == 0 {
			return nil, fmt.Errorf("severity_colors: unknown severity %q", name)
		}
		if color = strings.TrimSpace(color); color != "" {
			colors[sev] = color
		}
	}
	return colors, nil
}

func severityByName(name string) int {
	if name == "emerg" {
		return journal.MinSeverity
	}
	for i, n := range journal.SeverityNames() {
		if n == name {
			return journal.MinSeverity + i
		}
	}
	return 0
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
