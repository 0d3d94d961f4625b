// Package watch notifies on changes to prompt files inside a vault.
//
// A Watcher monitors the vault's prompt directories through fsnotify,
// debounces rapid bursts of events, and invokes registered callbacks
// once the vault settles. The usual callback rebuilds the search index.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/logger"
	"github.com/teranos/PRX/store"
)

const (
	// debouncePeriod coalesces rapid file changes into one notification.
	debouncePeriod = 500 * time.Millisecond

	// Sustained notification rate and burst allowance. Editors that
	// rewrite files in tight loops still settle to one callback per
	// refill interval.
	notifyPerSecond = 1
	notifyBurst     = 2
)

// ChangeCallback is called after the vault settles following a change.
type ChangeCallback func() error

// Watcher watches a vault's prompt directories and triggers change callbacks.
type Watcher struct {
	vault   *store.Vault
	watcher *fsnotify.Watcher
	log     *zap.SugaredLogger

	mu            sync.RWMutex
	callbacks     []ChangeCallback
	debounceTimer *time.Timer

	limiter *rate.Limiter
}

// New creates a watcher over the vault's prompts, archive, and folder
// directories. Folder subdirectories existing at creation time are
// watched too; ones created later are picked up from their create events.
func New(v *store.Vault) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	dirs := []string{v.PromptsDir(), v.ArchiveDir(), v.FoldersDir()}
	folders, err := v.Folders()
	if err != nil {
		fsw.Close()
		return nil, err
	}
	for _, folder := range folders {
		dirs = append(dirs, filepath.Join(v.FoldersDir(), folder))
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "watching %s", dir)
		}
	}

	return &Watcher{
		vault:     v,
		watcher:   fsw,
		log:       logger.ComponentLogger("watch"),
		callbacks: make([]ChangeCallback, 0),
		limiter:   rate.NewLimiter(rate.Limit(notifyPerSecond), notifyBurst),
	}, nil
}

// OnChange registers a callback to be called when the vault changes.
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for vault changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// watchLoop monitors file system events
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New folder directories need their own watch.
			if event.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.log.Warnw("Failed to watch new directory",
							logger.FieldPath, event.Name,
							logger.FieldError, err)
					} else {
						w.log.Debugw("Watching new directory",
							logger.FieldPath, event.Name)
					}
					w.scheduleChange()
					continue
				}
			}

			if !relevant(event) {
				continue
			}

			w.log.Debugw("Vault change detected",
				logger.FieldPath, event.Name,
				"op", event.Op.String())
			w.scheduleChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Vault watcher error",
				logger.FieldError, err)
		}
	}
}

// relevant reports whether an event should trigger change callbacks.
// Editor temp files and hidden files are ignored.
func relevant(event fsnotify.Event) bool {
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	if event.Op&ops == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp") {
		return false
	}

	// Removes and renames of directories arrive without a stat-able
	// target, so anything not obviously temporary counts.
	return true
}

// scheduleChange debounces rapid file changes and triggers callbacks
func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(debouncePeriod, w.fire)
}

// fire runs the registered callbacks once the debounce period passes.
// When changes arrive faster than the sustained rate, the notification
// is deferred rather than dropped so the final state is never missed.
func (w *Watcher) fire() {
	if !w.limiter.Allow() {
		w.log.Debugw("Vault change rate limited, deferring")
		w.scheduleChange()
		return
	}

	w.mu.RLock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	w.log.Debugw("Vault changed, notifying",
		logger.FieldCount, len(callbacks))

	for _, callback := range callbacks {
		if err := callback(); err != nil {
			w.log.Warnw("Vault change callback error",
				logger.FieldError, err)
			// Continue calling other callbacks even if one fails
		}
	}
}

// Stop stops watching for vault changes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
