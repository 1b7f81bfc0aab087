package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/appprune/internal/cleaner"
)

// Handler receives an application whose bundle disappeared together with the
// associated library entries still on disk. It is called from the watcher's
// event goroutine, one call at a time.
type Handler func(app cleaner.Application, leftovers []string)

// Watcher follows the application roots and reports leftovers of removed bundles.
type Watcher struct {
	cleaner *cleaner.Cleaner
	handler Handler
	logger  *slog.Logger

	roots  []string
	suffix string

	fsw      *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Watcher over the Cleaner's application roots.
func New(c *cleaner.Cleaner, handler Handler) (*Watcher, error) {
	if c == nil {
		return nil, fmt.Errorf("cleaner cannot be nil")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	paths := c.Paths()
	return &Watcher{
		cleaner: c,
		handler: handler,
		logger:  slog.Default(),
		roots:   paths.AppRoots,
		suffix:  paths.BundleSuffix,
		stopCh:  make(chan struct{}),
	}, nil
}

// SetLogger replaces the logger used for skipped roots and watch errors.
func (w *Watcher) SetLogger(l *slog.Logger) {
	w.logger = l
}

// Start subscribes to the application roots and begins processing events in
// the background. Roots that do not exist are skipped; if none can be watched
// Start fails.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	watched := 0
	for _, root := range w.roots {
		if err := fsw.Add(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				w.logger.Debug("skipping missing application root", "root", root)
				continue
			}
			fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		w.logger.Debug("watching application root", "root", root)
		watched++
	}

	if watched == 0 {
		fsw.Close()
		return fmt.Errorf("no application roots to watch")
	}

	w.fsw = fsw

	w.wg.Add(1)
	go w.run()

	return nil
}

// WatchedRoots returns the roots currently subscribed to.
func (w *Watcher) WatchedRoots() []string {
	if w.fsw == nil {
		return nil
	}
	return w.fsw.WatchList()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

// handleEvent runs the leftover scan for a bundle that has gone away.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !w.isBundleGone(ev) {
		return
	}

	app := w.cleaner.App(ev.Name)
	w.logger.Info("application bundle removed", "app", app.Name(), "path", app.Path)

	leftovers, err := w.cleaner.FindAssociated(app)
	if err != nil {
		w.logger.Warn("leftover scan incomplete", "app", app.Name(), "error", err)
	}
	if len(leftovers) == 0 {
		return
	}

	w.handler(app, leftovers)
}

// Stop halts event processing and releases the subscription. It is safe to
// call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		if w.fsw != nil {
			err = w.fsw.Close()
		}
	})
	if err != nil {
		return fmt.Errorf("failed to close filesystem watcher: %w", err)
	}
	return nil
}

// Run starts the watcher and blocks until ctx is done or SIGTERM/SIGINT is
// received, then stops it.
func (w *Watcher) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	select {
	case sig := <-sigCh:
		w.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
	}

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}
	return nil
}
