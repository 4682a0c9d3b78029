package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	tt "github.com/gnolang/linelint/internal/types"
)

// wait for a while after a file change to consider multiple changes as one
const defaultDebounce = 100 * time.Millisecond

// Watcher re-checks files under a root whenever they are written.
type Watcher struct {
	linter   *Linter
	excluder *excluder
	fsw      *fsnotify.Watcher
	onIssues func(path string, issues []tt.Issue)
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	// checkMu serialises flushes fired by overlapping timers
	checkMu sync.Mutex
}

// NewWatcher registers every non-excluded directory under root. onIssues is
// called with the result of each re-check, including empty results.
func NewWatcher(linter *Linter, root string, excludes []string, onIssues func(path string, issues []tt.Issue)) (*Watcher, error) {
	ex, err := newExcluder(root, excludes)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}

	w := &Watcher{
		linter:   linter,
		excluder: ex,
		fsw:      fsw,
		onIssues: onIssues,
		debounce: defaultDebounce,
		pending:  make(map[string]struct{}),
	}

	if err := w.addTree(ex.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("error adding directory to watcher: %w", err)
	}

	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return afero.Walk(w.linter.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != w.excluder.root && w.excluder.Excluded(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.linter.logger.Warn("Watch event queue overflowed, some changes may be missed")
				continue
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if w.excluder.Excluded(event.Name) {
		return
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := w.linter.fs.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.linter.logger.Warn("Error watching new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[event.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// flush re-checks every file changed since the last flush, in path order.
func (w *Watcher) flush() {
	w.checkMu.Lock()
	defer w.checkMu.Unlock()

	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	for _, path := range paths {
		info, err := w.linter.fs.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			// removed again, or not a file
			continue
		}

		issues, err := w.linter.CheckFile(path)
		if err != nil {
			w.linter.logger.Warn("Error checking file", zap.String("file", path), zap.Error(err))
			continue
		}
		if w.onIssues != nil {
			w.onIssues(path, issues)
		}
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
