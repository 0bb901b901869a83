package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Watch reloads path whenever it is written or replaced and passes the new
// config to fn. The directory is watched rather than the file so atomic
// saves (rename over the old file) are seen. A file that fails to parse is
// logged and skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config), logger zerolog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create config watcher")
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(path))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				logger.Warn().Err(err).Msg("config reload failed")
				continue
			}
			logger.Debug().Str("path", path).Msg("config reloaded")
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("config watcher")
		}
	}
}
