// Package watch triggers rebuilds when files below a set of directories
// change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/tagpages/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// Exclude lists directories whose events are ignored, typically the
	// build destination.
	Exclude []string
	// ExcludeFiles lists files written by the rebuild itself. Siblings whose
	// names start with the file name are ignored too, which covers the temp
	// files of atomic writers.
	ExcludeFiles []string
	Logger       *slog.Logger
}

// Watcher watches directory trees recursively and single files. Directories
// created while watching are added as they appear.
type Watcher struct {
	fs           *fsnotify.Watcher
	debounce     time.Duration
	exclude      []string
	excludeFiles []string
	logger       *slog.Logger

	// dirs are watched for every entry, files only for themselves through
	// their parent directory.
	dirs  map[string]bool
	files map[string]bool
}

// New starts watching roots. A directory root is watched recursively and a
// file root on its own. Roots that do not exist are skipped.
func New(roots []string, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	for _, dir := range opts.Exclude {
		abs, err := filepath.Abs(dir)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		w.exclude = append(w.exclude, abs)
	}
	for _, file := range opts.ExcludeFiles {
		abs, err := filepath.Abs(file)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", file, err)
		}
		w.excludeFiles = append(w.excludeFiles, abs)
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", root, err)
		}
		st, err := os.Stat(abs)
		switch {
		case err != nil:
			w.logger.Warn("Skipping watch root", logfields.Path(abs))
		case st.IsDir():
			w.addRecursive(abs)
		default:
			w.addFile(abs)
		}
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls rebuild once per burst of changes until ctx is done. Rebuilds run
// on the calling goroutine, so passes never overlap; events arriving during a
// pass start a new debounce period.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			w.logger.Info("Change detected; rebuilding")
			rebuild(ctx)
		}
	}
}

// handle reports whether ev should schedule a rebuild.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if ShouldIgnore(ev.Name) || w.excluded(ev.Name) || !w.watched(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
			w.addRecursive(ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

func (w *Watcher) excluded(path string) bool {
	for _, dir := range w.exclude {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	for _, file := range w.excludeFiles {
		if filepath.Dir(path) == filepath.Dir(file) &&
			strings.HasPrefix(filepath.Base(path), filepath.Base(file)) {
			return true
		}
	}
	return false
}

// watched reports whether path belongs to a watched tree or is a watched file.
func (w *Watcher) watched(path string) bool {
	return w.dirs[filepath.Dir(path)] || w.dirs[path] || w.files[path]
}

func (w *Watcher) addFile(path string) {
	w.files[path] = true
	if err := w.fs.Add(filepath.Dir(path)); err != nil {
		w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
	}
}

func (w *Watcher) addRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			return nil
		}
		w.dirs[path] = true
		return nil
	})
}

// ShouldIgnore reports whether path is a hidden, swap or editor backup file.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
