package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/michalprusek/segedit/pkg/segmentation"
)

// DocumentWatcher watches a segmentation document on disk and reloads it
// when an external tool (typically the inference pipeline) rewrites it.
// Reloads are debounced because pipelines tend to write in several
// chunks.
type DocumentWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	path     string
	onReload func(*segmentation.Result)
	onError  func(error)
	debounce time.Duration
	timer    *time.Timer
}

// NewDocumentWatcher creates a watcher for the given document path.
// onReload receives the freshly parsed result; onError receives load
// failures and watcher errors, and may be nil.
func NewDocumentWatcher(path string, debounce time.Duration, onReload func(*segmentation.Result), onError func(error)) (*DocumentWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	// Watch the parent directory: editors and pipelines often replace
	// the file via rename, which drops a direct file watch
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absPath, err)
	}

	return &DocumentWatcher{
		watcher:  fsw,
		path:     absPath,
		onReload: onReload,
		onError:  onError,
		debounce: debounce,
	}, nil
}

// Start begins watching for document changes
func (dw *DocumentWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-dw.watcher.Events:
				if !ok {
					return
				}

				if event.Name != dw.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					dw.scheduleReload()
				}

			case err, ok := <-dw.watcher.Errors:
				if !ok {
					return
				}
				dw.reportError(err)
			}
		}
	}()
}

// scheduleReload arms the debounce timer, replacing any pending one
func (dw *DocumentWatcher) scheduleReload() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.timer != nil {
		dw.timer.Stop()
	}

	dw.timer = time.AfterFunc(dw.debounce, func() {
		result, err := segmentation.Load(dw.path)
		if err != nil {
			dw.reportError(fmt.Errorf("reload %s: %w", dw.path, err))
			return
		}
		if dw.onReload != nil {
			dw.onReload(result)
		}
	})
}

func (dw *DocumentWatcher) reportError(err error) {
	if dw.onError != nil {
		dw.onError(err)
	}
}

// Path returns the absolute path of the watched document
func (dw *DocumentWatcher) Path() string {
	return dw.path
}

// Close stops the watcher and cancels any pending reload
func (dw *DocumentWatcher) Close() error {
	dw.mu.Lock()
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.mu.Unlock()

	return dw.watcher.Close()
}
