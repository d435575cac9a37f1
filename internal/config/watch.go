package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config at path whenever it changes on disk and sends
// each successfully parsed result on the returned channel. The parent
// directory is watched because editors often replace the file by rename.
// The channel closes when ctx ends.
func Watch(ctx context.Context, path string, logger *zap.Logger) (<-chan Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(resolved)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != resolved || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := Load(resolved)
				if err != nil {
					logger.Warn("config reload failed", zap.String("path", resolved), zap.Error(err))
					continue
				}
				logger.Info("config reloaded", zap.String("path", resolved))
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()
	return out, nil
}
