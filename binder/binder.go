// Package binder is a convenience layer over nativemod.Engine for hosts
// that want to track a flat table of bound symbols by name instead of
// juggling *nativemod.Binding values themselves.
package binder

import (
	"errors"
	"sync"

	"github.com/coredb/nativemod"
)

var (
	// ErrAlreadyBound is returned by BindLegacy for a name already tracked.
	ErrAlreadyBound = errors.New("binder: symbol already bound")
	// ErrNotBound is returned by Release for a name not currently tracked.
	ErrNotBound = errors.New("binder: symbol not bound")
)

// Binder tracks legacy-generation bindings by their dotted name, refusing
// to double-bind a name and giving the caller a single place to release
// everything it registered.
type Binder struct {
	engine *nativemod.Engine

	mu      sync.Mutex
	symbols map[string]*nativemod.Binding
}

// New wraps engine.
func New(engine *nativemod.Engine) *Binder {
	return &Binder{engine: engine, symbols: make(map[string]*nativemod.Binding)}
}

// BindLegacy resolves a dotted name via the legacy generation and remembers
// it under that name.
func (bd *Binder) BindLegacy(name string) (*nativemod.Binding, error) {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	if _, ok := bd.symbols[name]; ok {
		return nil, ErrAlreadyBound
	}
	b := nativemod.NewBinding(name)
	if err := bd.engine.BindSymbol(b, true); err != nil {
		return nil, err
	}
	bd.symbols[name] = b
	return b, nil
}

// Release unbinds and forgets name.
func (bd *Binder) Release(name string) error {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	b, ok := bd.symbols[name]
	if !ok {
		return ErrNotBound
	}
	delete(bd.symbols, name)
	return bd.engine.UnbindSymbol(b)
}

// ReleaseAll unbinds every symbol the Binder currently tracks. Errors are
// collected but do not stop the sweep, since a caller tearing down wants
// every binding it can release regardless of one failure.
func (bd *Binder) ReleaseAll() []error {
	bd.mu.Lock()
	names := make([]string, 0, len(bd.symbols))
	for name := range bd.symbols {
		names = append(names, name)
	}
	bd.mu.Unlock()

	var errs []error
	for _, name := range names {
		if err := bd.Release(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Get returns the binding registered under name, if any.
func (bd *Binder) Get(name string) (*nativemod.Binding, bool) {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	b, ok := bd.symbols[name]
	return b, ok
}

// Len reports how many symbols are currently tracked.
func (bd *Binder) Len() int {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	return len(bd.symbols)
}
