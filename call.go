package nativemod

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Args is the opaque argument range passed to a native function, mirroring
// the args_begin/args_end pair in the call ABI. Marshalling their contents
// is the caller's concern; this package only forwards the pointers.
type Args struct {
	Begin unsafe.Pointer
	End   unsafe.Pointer
}

// CallContext is passed to the native function as its ctx argument. Its
// only field is an optional diagnostic message describing a failure.
type CallContext struct {
	Diagnostic string
}

// Call invokes b, resolving it first via the lazy resolver if it is an
// unresolved legacy binding. The Module backing b is pinned with a
// transient reference for the duration of the call, independent of the
// binding's own standing reference: a reload running while this call is
// suspended in native code retargets the binding to a new image without
// unmapping the one this call is still executing against.
func (e *Engine) Call(b *Binding, args Args, ctx *CallContext) error {
	if !b.Resolved() {
		if !b.legacy {
			return ErrUnresolved
		}
		if err := e.resolveLegacy(b); err != nil {
			return err
		}
	}

	m := b.module
	addr := Address(b.address)
	m.ref()
	defer m.unref(e.log)

	if e.beforeInvoke != nil {
		e.beforeInvoke()
	}

	rc := e.invoker(addr, args, ctx)
	if rc != 0 {
		if ctx.Diagnostic == "" {
			return &NativeError{Binding: b.Name}
		}
		return &NativeError{Binding: b.Name, Diagnostic: ctx.Diagnostic}
	}
	return nil
}

// invoker is the shape of the function that actually crosses into native
// code. It is a field on Engine, not a free function, so tests can swap in
// a fake that never dereferences a bogus address the way a fake Linker's
// symbol table would produce.
type invokeFunc func(addr Address, args Args, ctx *CallContext) int32

func invokeNative(addr Address, args Args, ctx *CallContext) int32 {
	r1, _, _ := purego.SyscallN(uintptr(addr), uintptr(unsafe.Pointer(ctx)), uintptr(args.Begin), uintptr(args.End))
	return int32(r1)
}
