package binder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coredb/nativemod"
)

// fakeLinker is a minimal Linker: every Open succeeds with a fresh handle
// exporting a single symbol "f1", regardless of the staged file's content.
// Good enough to exercise Binder's bookkeeping without a real shared
// library.
type fakeLinker struct{ next uintptr }

func (f *fakeLinker) Open(string) (uintptr, error) {
	f.next++
	return f.next, nil
}

func (f *fakeLinker) Sym(handle uintptr, name string) (uintptr, error) {
	if name != "f1" {
		return 0, os.ErrNotExist
	}
	return 0x1000, nil
}

func (f *fakeLinker) Close(uintptr) error { return nil }

func newTestEngine(t *testing.T) *nativemod.Engine {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "m.so")
	if err := os.WriteFile(path, []byte("stub"), 0o755); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	return nativemod.New(nativemod.StaticResolver{"m": path}, nativemod.Options{
		StagingRoot: t.TempDir(),
		Linker:      &fakeLinker{},
	})
}

func TestBinderBindAndRelease(t *testing.T) {
	e := newTestEngine(t)
	bd := New(e)

	b, err := bd.BindLegacy("m.f1")
	if err != nil {
		t.Fatalf("BindLegacy: %v", err)
	}
	if !b.Resolved() {
		t.Fatalf("expected binding to be resolved")
	}
	if _, err := bd.BindLegacy("m.f1"); err != ErrAlreadyBound {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
	if got, ok := bd.Get("m.f1"); !ok || got != b {
		t.Fatalf("Get did not return the tracked binding")
	}
	if bd.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bd.Len())
	}

	if err := bd.Release("m.f1"); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, ok := bd.Get("m.f1"); ok {
		t.Fatalf("expected binding to be forgotten after Release")
	}
	if err := bd.Release("m.f1"); err != ErrNotBound {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}
}

func TestBinderReleaseAll(t *testing.T) {
	e := newTestEngine(t)
	bd := New(e)

	if _, err := bd.BindLegacy("m.f1"); err != nil {
		t.Fatalf("BindLegacy: %v", err)
	}
	if errs := bd.ReleaseAll(); len(errs) != 0 {
		t.Fatalf("ReleaseAll returned errors: %v", errs)
	}
	if bd.Len() != 0 {
		t.Fatalf("Len after ReleaseAll = %d, want 0", bd.Len())
	}
}
