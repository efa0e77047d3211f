package app

import (
	"os"
	"time"
)

// DocumentWatcher polls an extraction JSON file for changes and triggers a
// callback when it is rewritten, so a document open in the viewer refreshes
// after re-extraction outside the app.
type DocumentWatcher struct {
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChanged     func(path string)
}

// NewDocumentWatcher creates a watcher for the given file. Returns nil if
// the file cannot be stat'ed.
func NewDocumentWatcher(path string, checkInterval time.Duration) *DocumentWatcher {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &DocumentWatcher{
		path:          path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
}

// OnChanged sets the callback to invoke when the file is rewritten. The
// callback runs on a background goroutine; UI updates must be marshalled
// back to the main thread by the caller.
func (w *DocumentWatcher) OnChanged(callback func(path string)) {
	w.onChanged = callback
}

// Start begins watching in a background goroutine.
func (w *DocumentWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the watcher goroutine.
func (w *DocumentWatcher) Stop() {
	close(w.stopCh)
}

// Path returns the watched file path.
func (w *DocumentWatcher) Path() string {
	return w.path
}

func (w *DocumentWatcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.checkForUpdate() && w.onChanged != nil {
				w.onChanged(w.path)
			}
		}
	}
}

// checkForUpdate returns true once per rewrite: the baseline advances to
// the new modification time so a single save fires a single callback.
func (w *DocumentWatcher) checkForUpdate() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	if info.ModTime().After(w.baseline) {
		w.baseline = info.ModTime()
		return true
	}
	return false
}
