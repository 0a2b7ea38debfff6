package nativemod

import "fmt"

// moduleCache is a package-keyed map of borrowed Module references. Both
// the legacy and modern generations share this contract; the policy
// difference between them (stale-tolerant vs freshness-checked) lives in
// the resolver code that calls find/insert/replace, not here.
type moduleCache struct {
	entries map[string]*Module
}

func newModuleCache() *moduleCache {
	return &moduleCache{entries: make(map[string]*Module)}
}

func (c *moduleCache) find(pkg string) *Module {
	return c.entries[pkg]
}

func (c *moduleCache) len() int { return len(c.entries) }

// insert adds a freshly loaded module under pkg. It does not touch m's
// refcount: m arrives with whatever stake its loader call already gave it,
// and that stake becomes the cache's own claim once m.cache is set.
func (c *moduleCache) insert(m *Module) {
	c.entries[m.Package] = m
	m.cache = c
}

// replace atomically repoints pkg at m, for the Reloader and for a modern
// identity-mismatch refresh. It fails only if pkg is not already present,
// which callers treat as a fatal invariant violation since they just
// looked the key up moments before.
func (c *moduleCache) replace(pkg string, m *Module) error {
	if _, ok := c.entries[pkg]; !ok {
		return fmt.Errorf("nativemod: replace of absent cache key %q", pkg)
	}
	c.entries[pkg] = m
	m.cache = c
	return nil
}

// deleteEntry removes m's map slot without adjusting its refcount. Called
// from Module.unref once refs has already reached zero, purely to keep the
// map from holding a dangling pointer.
func (c *moduleCache) deleteEntry(m *Module) {
	if c.entries[m.Package] == m {
		delete(c.entries, m.Package)
	}
}

// evict removes a still-live module from the cache, releasing the cache's
// own claim on it. Used by EvictLegacy; bindings still attached to m keep
// it alive as an orphan.
func (c *moduleCache) evict(m *Module, log Logger) {
	delete(c.entries, m.Package)
	m.cache = nil
	m.unref(log)
}
