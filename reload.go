package nativemod

import "fmt"

// migratedBinding records one binding successfully retargeted during a
// reload, so a later failure can walk them back in reverse order.
type migratedBinding struct {
	b    *Binding
	addr uintptr
}

// ReloadLegacy atomically replaces the legacy cache's Module for pkg with
// a freshly loaded image and retargets every existing binding to it. If
// any binding's symbol is missing from the new image, every already-
// migrated binding is rolled back to the old image and the old Module is
// left exactly as it was found.
func (e *Engine) ReloadLegacy(pkg string) error {
	old := e.legacy.find(pkg)
	if old == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchModule, pkg)
	}

	path, err := e.resolver.Resolve(pkg)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, pkg)
	}
	fresh, err := e.loader.load(path, pkg)
	if err != nil {
		return err
	}

	old.ref() // extra pin so old survives the whole migration regardless of how many bindings it loses along the way

	snapshot := old.snapshotBindings()
	migrated := make([]migratedBinding, 0, len(snapshot))
	for _, b := range snapshot {
		addr, err := fresh.linker.Sym(fresh.handle, b.sym)
		if err != nil {
			e.rollbackReload(old, fresh, migrated)
			fresh.unref(e.log) // release fresh's own loader claim; it was never cached
			old.unref(e.log)   // release the migration pin
			return &SymbolNotFoundError{Package: pkg, Symbol: b.sym}
		}
		unlink(b)
		fresh.ref()
		link(b, fresh, addr)
		old.unref(e.log)
		migrated = append(migrated, migratedBinding{b: b, addr: addr})
	}

	if err := e.legacy.replace(pkg, fresh); err != nil {
		e.log.Fatal("legacy cache replace failed for a key that was just looked up", "package", pkg, "error", err)
	}
	old.orphan()
	old.unref(e.log) // release old's own former cache claim
	old.unref(e.log) // release the migration pin taken above
	return nil
}

// rollbackReload walks migrated back to front, re-resolving each binding
// against the old image and relinking it there. A symbol that was present
// in old moments ago and is now missing indicates memory corruption or
// concurrent external mutation the cache cannot recover from.
func (e *Engine) rollbackReload(old, fresh *Module, migrated []migratedBinding) {
	for i := len(migrated) - 1; i >= 0; i-- {
		b := migrated[i].b
		unlink(b)
		fresh.unref(e.log)

		addr, err := old.linker.Sym(old.handle, b.sym)
		if err != nil {
			e.log.Fatal("rollback failed to re-resolve a symbol present moments ago", "package", old.Package, "symbol", b.sym, "error", err)
		}
		old.ref()
		link(b, old, addr)
	}
}
