package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/moeezmir/portfolio/internal/logging"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watcher rebuilds the site whenever a file under the content directory
// changes. Bursts of events within Debounce collapse into one rebuild.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Rebuild  func() error
	Log      *logging.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewWatcher creates a Watcher for dir that calls rebuild on change.
func NewWatcher(dir string, rebuild func() error, log *logging.Logger) *Watcher {
	return &Watcher{
		Dir:      dir,
		Debounce: DefaultDebounce,
		Rebuild:  rebuild,
		Log:      log,
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	if err := w.addTree(w.Dir); err != nil {
		return err
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// New directories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.Log.Warn(err, "failed to watch new directory")
					}
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.rebuild()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn(err, "file watcher error")

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}

func (w *Watcher) rebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.Log.Debug("content changed, rebuilding site")
	if err := w.Rebuild(); err != nil {
		w.Log.Error(err, "site rebuild failed")
		return
	}
	w.Log.Info("site rebuilt")
}

// addTree adds root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}
