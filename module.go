package nativemod

import "container/list"

// Module is a refcounted handle to one loaded shared library image, plus
// the set of Symbol Bindings currently attached to it. A Module detached
// from its cache but kept alive by outstanding references is an orphan.
type Module struct {
	Package  string
	handle   uintptr
	linker   Linker
	identity Identity

	refs     int
	cache    *moduleCache
	bindings list.List // of *Binding
}

// newModule wraps a freshly opened handle with refs == 1. That single
// reference belongs to whoever called the loader; it becomes the cache's
// own claim the moment the Module is inserted or spliced into a cache map,
// and must be released with unref if the load is ever abandoned before
// reaching a cache (e.g. a reload whose replacement image turns out to be
// missing a symbol).
func newModule(pkg string, handle uintptr, linker Linker, id Identity) *Module {
	return &Module{Package: pkg, handle: handle, linker: linker, identity: id, refs: 1}
}

// Refs reports the current reference count. Exposed for tests asserting
// the invariants in the specification's testable-properties section.
func (m *Module) Refs() int { return m.refs }

// Cached reports whether m is currently reachable from a cache map.
func (m *Module) Cached() bool { return m.cache != nil }

// Identity returns the on-disk fingerprint captured when m was loaded.
func (m *Module) Identity() Identity { return m.identity }

func (m *Module) ref() {
	if m.refs < 0 {
		panic("nativemod: ref of module with negative refcount")
	}
	m.refs++
}

// unref releases one reference. When the count reaches zero, m is removed
// from its cache map (if any — this is bookkeeping only, refs is already
// zero) and its dynamic-linker handle is closed.
func (m *Module) unref(log Logger) {
	if m.refs <= 0 {
		panic("nativemod: unref of module with non-positive refcount")
	}
	m.refs--
	if m.refs > 0 {
		return
	}
	if m.cache != nil {
		m.cache.deleteEntry(m)
		m.cache = nil
	}
	if err := m.linker.Close(m.handle); err != nil && log != nil {
		log.Warn("close module handle failed", "package", m.Package, "error", err)
	}
}

// orphan detaches m from its cache without touching its refcount. Used
// when m has already been replaced in the cache map by a successor and
// must simply stop being reachable by name.
func (m *Module) orphan() { m.cache = nil }

// snapshotBindings returns the bindings currently attached to m, safe to
// range over while the Reloader mutates m.bindings — no yield point exists
// between taking this snapshot and finishing the migration loop.
func (m *Module) snapshotBindings() []*Binding {
	out := make([]*Binding, 0, m.bindings.Len())
	for el := m.bindings.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*Binding))
	}
	return out
}
