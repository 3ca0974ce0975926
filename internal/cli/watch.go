package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/sashes/internal/infrastructure/events"
	"github.com/bnema/sashes/internal/logging"
)

// DefaultWatchDelay coalesces the burst of events an editor save produces.
const DefaultWatchDelay = 150 * time.Millisecond

// WatchFiles calls changed with the path of every file in paths that is
// written, created or renamed into place. Bursts on one file within delay
// collapse into a single call. It blocks until ctx is done.
func WatchFiles(ctx context.Context, paths []string, delay time.Duration, changed func(path string)) error {
	log := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched so files replaced by rename keep reporting.
	wanted := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		wanted[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	debouncer := events.NewDebouncer(delay, changed)
	defer debouncer.Stop()
	log.Debug().Int("files", len(wanted)).Dur("delay", debouncer.Delay()).Msg("watching files")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := wanted[name]; !ok {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Str("file", name).Msg("watched file changed")
			debouncer.Schedule(name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
