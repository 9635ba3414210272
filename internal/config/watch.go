package config

import (
	"context"
	"log/slog"

	"paramkit/internal/watcher"
)

// NewWatcher returns a watcher that reloads path after each change and
// hands the result to onReload. A file that fails to load or validate is
// reported through err and cfg is nil.
func NewWatcher(path string, logger *slog.Logger, onReload func(cfg *Config, err error)) *watcher.Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "config")

	return watcher.New(path, func() {
		cfg, err := LoadFromPath(path)
		if err != nil {
			logger.Warn("config reload failed", "path", path, "error", err)
			onReload(nil, err)
			return
		}
		logger.Info("config reloaded", "path", path)
		onReload(cfg, nil)
	}).WithLogger(logger)
}

// Watch blocks, reloading path until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *slog.Logger, onReload func(cfg *Config, err error)) error {
	return NewWatcher(path, logger, onReload).Watch(ctx)
}
