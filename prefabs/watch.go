package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed prefab and script files. Events carry the base
// name ("player.yaml", "scripts/gray_fox.tengo") so they can be passed
// straight back to Load or LoadScript.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches Dir and Dir/scripts.
func NewWatcher() (*Watcher, error) {
	return NewWatcherFor(Dir, filepath.Join(Dir, "scripts"))
}

func NewWatcherFor(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Drain returns every pending change without blocking.
func (w *Watcher) Drain() []string {
	var names []string
	seen := make(map[string]bool)
	for {
		select {
		case name := <-w.Events:
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			var name string
			switch {
			case isSpecFile(event.Name):
				name = filepath.Base(event.Name)
			case isScriptFile(event.Name):
				name = "scripts/" + filepath.Base(event.Name)
			default:
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[name] = now
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			default:
				// the game loop drains at its own pace; drop bursts
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
