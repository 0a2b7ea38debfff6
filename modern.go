package nativemod

// Load implements the modern generation's load(package) → Module. It
// checks on-disk identity on every call: a fresh package is loaded and
// cached; a cached package whose file has not changed hands back a second
// reference to the same Module; a cached package whose identity has
// drifted loads a replacement, orphans the stale Module, and leaves any of
// its existing bindings pinned to the old image on purpose — the modern
// generation's bindings never migrate.
func (e *Engine) Load(pkg string) (*Module, error) {
	path, err := e.resolver.Resolve(pkg)
	if err != nil {
		return nil, err
	}

	cached := e.modern.find(pkg)
	if cached == nil {
		fresh, err := e.loader.load(path, pkg)
		if err != nil {
			return nil, err
		}
		e.modern.insert(fresh) // fresh's loader-granted ref becomes the cache's claim
		fresh.ref()            // this call's own +1
		return fresh, nil
	}

	curID, err := statIdentity(path)
	if err != nil {
		return nil, err
	}
	if curID.Equal(cached.identity) {
		cached.ref()
		return cached, nil
	}

	fresh, err := e.loader.load(path, pkg)
	if err != nil {
		return nil, err
	}
	if err := e.modern.replace(pkg, fresh); err != nil {
		e.log.Fatal("modern cache replace failed for a key that was just looked up", "package", pkg, "error", err)
	}
	cached.orphan()
	cached.unref(e.log) // release the stale module's own former cache claim
	fresh.ref()         // this call's own +1
	return fresh, nil
}

// Unload releases the caller's reference to a Module obtained from Load.
func (e *Engine) Unload(m *Module) {
	m.unref(e.log)
}
