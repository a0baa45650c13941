package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/artpar/authorkit/core/document"
)

// Watcher re-parses an author file whenever it changes on disk. A
// failed re-parse keeps the previous document.
type Watcher struct {
	mu       sync.RWMutex
	svc      *Service
	path     string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	doc      document.Document
	onChange []func(document.Document)
	stopCh   chan struct{}
}

// NewWatcher parses the file once and prepares a watcher for it.
func NewWatcher(svc *Service, path string, logger zerolog.Logger) (*Watcher, error) {
	doc, err := svc.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("initial parse: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Watcher{
		svc:    svc,
		path:   absPath,
		logger: logger,
		doc:    doc,
		stopCh: make(chan struct{}),
	}, nil
}

// Document returns the most recently parsed document.
func (w *Watcher) Document() document.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.doc
}

// OnChange registers a callback invoked after each successful re-parse.
func (w *Watcher) OnChange(fn func(document.Document)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Start begins watching the file's directory. Watching the directory
// instead of the file survives editors that save atomically.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.watcher = watcher

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go w.watchLoop()

	w.logger.Info().Str("path", w.path).Msg("watching author file for changes")
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// Reload re-parses the file. On failure the previous document stays
// current and the error is returned.
func (w *Watcher) Reload() error {
	doc, err := w.svc.ParseFile(w.path)
	if err != nil {
		w.logger.Error().Err(err).Msg("re-parse failed, keeping previous document")
		return err
	}

	w.mu.Lock()
	w.doc = doc
	callbacks := w.onChange
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(doc)
	}

	w.logger.Info().Str("path", w.path).Msg("author file reloaded")
	return nil
}

func (w *Watcher) watchLoop() {
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// write or create (atomic save = create)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("author file changed")
				if err := w.Reload(); err != nil {
					w.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-w.stopCh:
			return
		}
	}
}
