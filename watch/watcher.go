// Package watch offers an optional fsnotify-driven trigger that calls
// ReloadLegacy automatically when a watched source file changes on disk.
// The specification's reload path is explicit by design; this package
// only automates *calling* that same explicit operation, it does not
// change what a reload does.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader is the subset of nativemod.Engine this package depends on.
type Reloader interface {
	ReloadLegacy(pkg string) error
}

// Watcher maps watched source paths to the package name a reload should
// target when that path changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	engine Reloader
	log    *zap.SugaredLogger

	mu     sync.Mutex
	byPath map[string]string

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher bound to engine. The caller must call Watch for
// each package it wants auto-reloaded, then Start.
func New(engine Reloader, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fsw:    fsw,
		engine: engine,
		log:    log.Sugar(),
		byPath: make(map[string]string),
		stopCh: make(chan struct{}),
	}, nil
}

// Watch begins watching the directory containing path and associates a
// write or create event on path with a ReloadLegacy(pkg) call.
func (w *Watcher) Watch(path, pkg string) error {
	dir := filepath.Dir(path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	w.mu.Lock()
	w.byPath[path] = pkg
	w.mu.Unlock()
	return nil
}

// Start begins processing filesystem events in the background.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.mu.Lock()
			pkg, tracked := w.byPath[ev.Name]
			w.mu.Unlock()
			if !tracked {
				continue
			}
			if err := w.engine.ReloadLegacy(pkg); err != nil {
				w.log.Warnw("auto reload after file change failed", "package", pkg, "path", ev.Name, "error", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("file watcher error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

// Stop halts event processing and releases the underlying fsnotify watch.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()
	return w.fsw.Close()
}
