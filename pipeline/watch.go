package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/prismui/prism/errors"
	"github.com/prismui/prism/logger"
)

// watchedExtensions are the source document types a change run cares about
var watchedExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// Watcher re-runs generation when CSM or token source documents change.
// Editor save bursts coalesce through a debounce window, and a rate limiter
// bounds how often the change callback can fire regardless of event volume.
type Watcher struct {
	fsw      *fsnotify.Watcher
	limiter  *rate.Limiter
	debounce time.Duration
	onChange func(paths []string)
}

// NewWatcher creates a watcher. onChange receives the batch of changed paths
// after a quiet period of debounce.
func NewWatcher(debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create filesystem watcher")
	}
	return &Watcher{
		fsw: fsw,
		// At most one rebuild per debounce window, with a small burst for
		// the initial change
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Add watches a directory for source document changes
func (w *Watcher) Add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	logger.Infow("Watching directory", "dir", dir)
	return nil
}

// Close stops the underlying filesystem watcher
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run processes filesystem events until the context is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			// Restart the quiet period on every event in the burst
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if len(pending) == 0 {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]struct{})
			logger.Infow("Source changes detected", "count", len(paths))
			w.onChange(paths)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("Watcher error", "error", err)
		}
	}
}

// relevant filters events down to writes of source documents
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return watchedExtensions[filepath.Ext(event.Name)]
}
