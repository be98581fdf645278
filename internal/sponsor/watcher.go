package sponsor

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors emit per save.
const reloadDelay = 200 * time.Millisecond

// PolicyWatcher reloads the policy file into an Engine whenever it changes
// on disk. A reload that fails to parse leaves the running policy in place.
type PolicyWatcher struct {
	path   string
	engine *Engine
	log    *slog.Logger

	watcher *fsnotify.Watcher

	mu       sync.Mutex
	debounce *time.Timer

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewPolicyWatcher watches path and applies reloads to engine.
func NewPolicyWatcher(path string, engine *Engine, log *slog.Logger) *PolicyWatcher {
	return &PolicyWatcher{
		path:   path,
		engine: engine,
		log:    log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins watching. The parent directory is watched rather than the
// file itself so that rename-over saves keep delivering events.
func (w *PolicyWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	go w.watchLoop()
	return nil
}

// Stop ends the watch and waits for the loop to exit.
func (w *PolicyWatcher) Stop() {
	if w.watcher == nil {
		return
	}
	close(w.stopCh)
	w.watcher.Close()
	<-w.doneCh
}

func (w *PolicyWatcher) watchLoop() {
	defer close(w.doneCh)

	base := filepath.Base(w.path)
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("policy watch error", "error", err)
		}
	}
}

func (w *PolicyWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(reloadDelay, w.reload)
}

func (w *PolicyWatcher) reload() {
	policy, err := LoadPolicy(w.path)
	if err != nil {
		w.log.Warn("policy reload rejected", "path", w.path, "error", err)
		return
	}
	w.engine.SetPolicy(policy)
	w.log.Info("policy reloaded", "path", w.path, "active", policy.Active)
}
