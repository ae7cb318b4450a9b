package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets editors finish writing before the file is read
var settleDelay = 100 * time.Millisecond

// Watch reloads path whenever it changes and passes each config that loads
// and validates to onChange. Load and validation failures go to onError and
// the previous config stays in effect. Either callback may be nil. Watch
// blocks until ctx is done.
//
// The parent directory is watched rather than the file, so atomic
// replacements by editors (write temp file, rename) are seen.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) error {
	logger := logging.GetLogger("config.watch")

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigWatch, "failed to resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWatch, "failed to create config file watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close config file watcher")
		}
	}()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWatch, "failed to watch %s", path).
			WithDetail("path", path)
	}
	logger.Info().Str("path", abs).Msg("Watching config file for changes")

	if onChange == nil {
		onChange = func(*Config) {}
	}
	if onError == nil {
		onError = func(error) {}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(settleDelay):
			}
			if _, err := os.Stat(abs); err != nil {
				logger.Debug().Str("path", abs).Msg("Config file gone, skipping reload")
				continue
			}

			logger.Debug().Str("event", event.Op.String()).Msg("Config file changed, reloading")
			cfg, err := Load(abs)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				logger.Warn().Err(err).Msg("Failed to reload configuration")
				onError(err)
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Config file watcher error")
			onError(errors.Wrap(err, errors.ErrConfigWatch, "config file watcher error"))
		}
	}
}
