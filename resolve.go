package nativemod

import "fmt"

// BindSymbol resolves b's address. For the legacy generation (isLegacy
// true) this parses b.Name into (package, symbol) and lazily loads the
// package if it is not already cached. For the modern generation, b must
// already carry a Module set via SetModule, obtained from a prior Load
// call; BindSymbol only performs the symbol lookup and linking, since the
// caller's Load already claimed the standing reference this binding will
// reuse.
func (e *Engine) BindSymbol(b *Binding, isLegacy bool) error {
	if b.Resolved() {
		return ErrAlreadyLinked
	}
	if isLegacy {
		b.legacy = true
		name, err := ParseName(b.Name)
		if err != nil {
			return err
		}
		b.pkg, b.sym = name.Package, name.Symbol
		return e.resolveLegacy(b)
	}

	if b.module == nil {
		return fmt.Errorf("nativemod: modern binding %q has no module; call SetModule first", b.Name)
	}
	name, err := ParseName(b.Name)
	if err != nil {
		return err
	}
	b.sym = name.Symbol
	return e.resolveInto(b, b.module, b.sym)
}

// UnbindSymbol detaches b from its Module, releasing the reference the
// bind acquired. Unbinding an already-unresolved binding is a no-op,
// matching the specification's S6 scenario.
func (e *Engine) UnbindSymbol(b *Binding) error {
	if !b.Resolved() {
		return nil
	}
	m := unlink(b)
	m.unref(e.log)
	return nil
}

// resolveInto looks symbol up inside m's handle and links b to it on
// success, without touching m's refcount — the caller must have already
// taken the reference this link will hold.
func (e *Engine) resolveInto(b *Binding, m *Module, symbol string) error {
	addr, err := m.linker.Sym(m.handle, symbol)
	if err != nil {
		return &SymbolNotFoundError{Package: m.Package, Symbol: symbol}
	}
	link(b, m, addr)
	return nil
}

// resolveLegacy implements the specification's Lazy Resolver: find or load
// the package, take the pending binding's own reference, then resolve the
// symbol. The same explicit ref covers both a cache-hit and a fresh load,
// so a module gains exactly one +1 per successfully attached binding
// regardless of which path produced it.
func (e *Engine) resolveLegacy(b *Binding) error {
	m := e.legacy.find(b.pkg)
	if m == nil {
		path, err := e.resolver.Resolve(b.pkg)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrNotFound, b.pkg)
		}
		loaded, err := e.loader.load(path, b.pkg)
		if err != nil {
			return err
		}
		e.legacy.insert(loaded)
		m = loaded
	}

	m.ref()
	if err := e.resolveInto(b, m, b.sym); err != nil {
		m.unref(e.log)
		return err
	}
	return nil
}

// EvictLegacy removes pkg from the legacy cache, releasing the cache's own
// claim on its Module. Any remaining bindings keep the Module alive as an
// orphan until they too are unbound.
func (e *Engine) EvictLegacy(pkg string) error {
	m := e.legacy.find(pkg)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchModule, pkg)
	}
	e.legacy.evict(m, e.log)
	return nil
}
