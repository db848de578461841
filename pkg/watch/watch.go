package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay unchanged before the handler runs.
const DefaultDebounce = 800 * time.Millisecond

// Handler is called with the path of a file once its changes have settled.
type Handler func(path string)

// Watcher re-runs a handler for a set of files after they stop changing.
//
// The parent directories are watched rather than the files themselves, so
// editors that save by writing a temp file and renaming it are picked up.
// Each file has its own debounce timer; the handler is never called
// concurrently for the same file.
type Watcher struct {
	files    map[string]bool // absolute paths
	handler  Handler
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnError receives watcher errors. Nil discards them.
	OnError func(error)

	mu     sync.Mutex
	timers map[string]*time.Timer
	busy   map[string]*sync.Mutex
}

// New creates a watcher for files. A debounce of zero uses DefaultDebounce.
func New(files []string, debounce time.Duration, handler Handler) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		handler:  handler,
		debounce: debounce,
		watcher:  fw,
		timers:   make(map[string]*time.Timer),
		busy:     make(map[string]*sync.Mutex),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolve %q: %w", f, err)
		}
		w.files[abs] = true
		w.busy[abs] = new(sync.Mutex)
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %q: %w", dir, err)
		}
	}

	return w, nil
}

// Run processes file events until ctx is canceled, then stops all pending
// timers and closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			w.schedule(abs)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

// schedule (re)starts the debounce timer of path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		lock := w.busy[path]
		lock.Lock()
		defer lock.Unlock()
		w.handler(path)
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	w.watcher.Close()
}
