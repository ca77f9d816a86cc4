// Package watch re-runs an action whenever a single file changes on disk.
//
// The parent directory is watched rather than the file itself, so editors that
// save by writing a temp file and renaming it over the original keep
// triggering events.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange after the watched file has been written and then
// left alone for the debounce period.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context) error
	onError  func(error)
	logf     func(format string, args ...any)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period between the last event and the callback.
// Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler receives errors returned by the change callback.
// The watch keeps running after a callback error.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithLogger sets a debug logger. Pass nil to disable debug output.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(w *Watcher) {
		w.logf = logf
	}
}

// New creates a Watcher for path.
func New(path string, onChange func(ctx context.Context) error, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		onChange: onChange,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run watches until ctx is cancelled, which is not an error.
// It returns early only if the underlying file watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.debug("[watch] watching %s for changes to %s", dir, filepath.Base(w.path))

	triggers := make(chan struct{}, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.filterEvents(ctx, fsw.Events, fsw.Errors, triggers)
	})
	g.Go(func() error {
		return w.dispatch(ctx, triggers)
	})

	return g.Wait()
}

// filterEvents forwards relevant events for the watched file as triggers.
func (w *Watcher) filterEvents(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, triggers chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !w.matches(ev) {
				continue
			}
			w.debug("[watch] %s", ev)
			select {
			case triggers <- struct{}{}:
			default:
				// a trigger is already pending
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		}
	}
}

// dispatch debounces triggers and invokes the change callback.
func (w *Watcher) dispatch(ctx context.Context, triggers <-chan struct{}) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-triggers:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.reportError(err)
			}
		}
	}
}

// matches reports whether ev changes the content of the watched file.
func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reportError(err error) {
	w.debug("[watch] change handler failed: %v", err)
	if w.onError != nil {
		w.onError(err)
	}
}

func (w *Watcher) debug(format string, args ...any) {
	if w.logf != nil {
		w.logf(format, args...)
	}
}
