package nativemod

import "github.com/ebitengine/purego"

// Address is a resolved entry-point inside an opened image. It is an
// unsafe.Pointer-equivalent integer, never dereferenced by this package
// directly; callers cast it with As.
type Address uintptr

// As reinterprets a resolved Address as a Go function value of type T. T
// must be a function type with a signature matching the native symbol; the
// cast is unchecked, mirroring how a dynamic linker hands back an untyped
// entry point.
func As[T any](addr Address) (fn T) {
	purego.RegisterFunc(&fn, uintptr(addr))
	return
}

// Linker abstracts the three dynamic-linker primitives the cache depends
// on, so tests can substitute an in-memory fake instead of dlopen-ing a
// real shared object built by a toolchain invocation this module never
// performs itself.
type Linker interface {
	// Open loads path into the process and returns an opaque handle.
	Open(path string) (uintptr, error)
	// Sym resolves name inside handle.
	Sym(handle uintptr, name string) (uintptr, error)
	// Close releases handle. Implementations should tolerate being called
	// on a handle whose image is still mapped by other means.
	Close(handle uintptr) error
}

// dlLinker is the default Linker, backed by the pure-Go purego bindings for
// dlopen/dlsym/dlclose. No cgo is required.
type dlLinker struct{}

// NewLinker returns the process's default dynamic-linker-backed Linker.
func NewLinker() Linker { return dlLinker{} }

func (dlLinker) Open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func (dlLinker) Sym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func (dlLinker) Close(handle uintptr) error {
	return purego.Dlclose(handle)
}
