package nativemod

import "container/list"

// Binding is a named entry in a Module's symbol list: a (logical name →
// address) mapping that survives across a legacy reload by being
// retargeted, or that pins a single Module forever under the modern
// generation.
type Binding struct {
	Name string

	legacy  bool
	pkg     string
	sym     string
	module  *Module
	address uintptr
	elem    *list.Element
}

// NewBinding creates an unresolved binding for the given dotted name. It
// does not touch any cache; resolution happens lazily (legacy) or via
// BindSymbol against an already-loaded Module (modern).
func NewBinding(name string) *Binding {
	return &Binding{Name: name}
}

// Resolved reports whether the binding currently has an address.
func (b *Binding) Resolved() bool { return b.elem != nil }

// Module returns the Module currently backing this binding, or nil if
// unresolved.
func (b *Binding) Module() *Module { return b.module }

// Address returns the resolved entry point and true, or (0, false) if the
// binding has not been resolved.
func (b *Binding) Address() (Address, bool) {
	if b.elem == nil {
		return 0, false
	}
	return Address(b.address), true
}

// SetModule attaches m to b without resolving a symbol. Required before
// BindSymbol(b, false) for a modern-generation binding: the caller obtains
// m via Load and hands it here, transferring the standing reference they
// already hold into the binding once BindSymbol links it successfully.
func (b *Binding) SetModule(m *Module) { b.module = m }

// link attaches an already-referenced binding to m's binding list. Callers
// must have taken m.ref() themselves; link performs no refcount change —
// keeping ref and link as separate primitives is what lets a cache-hit's
// transient pin become the binding's own standing reference instead of
// being double-counted.
func link(b *Binding, m *Module, addr uintptr) {
	b.module = m
	b.address = addr
	b.elem = m.bindings.PushBack(b)
}

// unlink detaches b from its module's binding list and clears its resolved
// state. Callers must call the returned module's unref afterwards.
func unlink(b *Binding) *Module {
	m := b.module
	m.bindings.Remove(b.elem)
	b.elem = nil
	b.module = nil
	b.address = 0
	return m
}
