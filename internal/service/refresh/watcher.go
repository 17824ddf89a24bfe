package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// CacheInvalidator drops the cached dataset for one path.
type CacheInvalidator interface {
	Invalidate(path string) bool
}

// Watcher invalidates a file's cache entry whenever it is written, created,
// removed, or renamed. It watches the parent directories so that editors
// which replace files atomically are still observed.
type Watcher struct {
	watcher *fsnotify.Watcher
	cache   CacheInvalidator
	logger  *slog.Logger
	files   map[string]bool
	dirs    []string

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewWatcher creates a watcher for the given files. Empty paths are ignored.
func NewWatcher(cache CacheInvalidator, paths []string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files := make(map[string]bool)
	seenDir := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = true
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			dirs = append(dirs, dir)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		watcher: fw,
		cache:   cache,
		logger:  logger,
		files:   files,
		dirs:    dirs,
		done:    make(chan struct{}),
	}, nil
}

// Start adds the watched directories and begins processing events in a
// goroutine until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Info("watching data directory", "dir", dir)
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	err := w.watcher.Close()
	if running {
		<-w.done
	}
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

const invalidatingOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if !w.files[name] || event.Op&invalidatingOps == 0 {
		return
	}
	dropped := w.cache.Invalidate(name)
	w.logger.Info("data file changed", "path", name, "op", event.Op.String(), "invalidated", dropped)
}
