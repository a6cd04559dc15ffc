package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"picturereel/internal/eventbus"
)

// DefaultDebounce coalesces bursts of filesystem events into one rescan
const DefaultDebounce = 300 * time.Millisecond

// Watcher requests a rescan when pictures appear, vanish or are renamed
// anywhere a scan of root would look
type Watcher struct {
	bus      eventbus.EventBus
	root     string
	debounce time.Duration

	// owned by Start and then by the event loop
	dirs map[string]bool

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWatcher creates a watcher for root. It does nothing until Start.
func NewWatcher(bus eventbus.EventBus, root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{bus: bus, root: root, debounce: debounce}
}

// Start begins watching until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return fmt.Errorf("watcher already running")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.dirs = make(map[string]bool)
	if err := w.addTree(fw, w.root); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.watcher = fw
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(watchCtx, fw, w.done)
	return nil
}

// Stop ends watching and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	fw, cancel, done := w.watcher, w.cancel, w.done
	w.watcher, w.cancel, w.done = nil, nil, nil
	w.mu.Unlock()

	if fw == nil {
		return
	}
	cancel()
	fw.Close()
	<-done
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.handle(fw, event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				log.Printf("Library changed under %s, rescanning", w.root)
				w.bus.Publish(eventbus.ScanRequestedEvent{Paths: []string{w.root}})
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error for %s: %v", w.root, err)
			w.bus.Publish(eventbus.ErrorEvent{Message: "watch failed", Err: err})
		}
	}
}

// addTree watches dir and every directory below it that a scan would visit
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(w.root, path) {
			return fs.SkipDir
		}
		if err := fw.Add(path); err != nil {
			if path == dir {
				return err
			}
			log.Printf("Cannot watch %s: %v", path, err)
			return nil
		}
		w.dirs[path] = true
		return nil
	})
}

// handle keeps the watch list in step with the directory tree and reports
// whether event can change the scan result
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if skipDir(w.root, event.Name) {
				return false
			}
			if err := w.addTree(fw, event.Name); err != nil {
				log.Printf("Cannot watch %s: %v", event.Name, err)
			}
			return true
		}
	}

	if (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) && w.dirs[event.Name] {
		prefix := event.Name + string(filepath.Separator)
		for dir := range w.dirs {
			if dir == event.Name || strings.HasPrefix(dir, prefix) {
				delete(w.dirs, dir)
				_ = fw.Remove(dir)
			}
		}
		return true
	}

	return relevant(event)
}

func relevant(event fsnotify.Event) bool {
	if !IsImage(event.Name) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
