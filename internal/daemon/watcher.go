package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// Watcher monitors content files and calls onChange once a burst of
// filesystem events has settled.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()

	mu    sync.Mutex
	files map[string]struct{} // individual files, watched through their parent
	trees map[string]struct{} // directories whose markdown files matter

	reloadChan chan struct{}
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewWatcher creates a watcher that waits debounce after the last event
// before calling onChange.
func NewWatcher(debounce time.Duration, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:    fw,
		debounce:   debounce,
		onChange:   onChange,
		files:      make(map[string]struct{}),
		trees:      make(map[string]struct{}),
		reloadChan: make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
	}, nil
}

// AddFile watches a single file. The file may not exist yet; its parent
// directory must.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(abs), err)
	}
	w.mu.Lock()
	w.files[abs] = struct{}{}
	w.mu.Unlock()
	return nil
}

// AddTree watches root and its subdirectories for markdown changes.
func (w *Watcher) AddTree(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.addDir(p)
	})
}

func (w *Watcher) addDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.mu.Lock()
	w.trees[dir] = struct{}{}
	w.mu.Unlock()
	return nil
}

// Start begins processing events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	slog.Info("Starting content watcher", slog.Duration("debounce", w.debounce))
	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
}

// Stop closes the watcher and waits for its goroutines.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
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
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(event.Name)

	w.mu.Lock()
	_, isFile := w.files[name]
	_, inTree := w.trees[filepath.Dir(name)]
	w.mu.Unlock()

	switch {
	case isFile:
	case inTree && strings.EqualFold(filepath.Ext(name), ".md"):
	case inTree && event.Has(fsnotify.Create):
		// new subdirectory of a content tree
		if st, err := os.Stat(name); err == nil && st.IsDir() {
			if err := w.addDir(name); err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(name), logfields.Error(err))
			}
		}
		return
	default:
		return
	}
	slog.Debug("Content change detected", logfields.File(name), slog.String("op", event.Op.String()))
	w.trigger()
}

func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
		// already pending
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.reloadChan:
			stop()
			timer = time.AfterFunc(w.debounce, w.onChange)
		}
	}
}
