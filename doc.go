/*
Package nativemod is a dynamic native-module cache and symbol-resolution
subsystem: it loads shared libraries by logical package name, resolves
named entry points inside them, reference-counts loaded libraries across
many dependent bindings, and supports hot-reload that atomically rebinds
every live symbol to a freshly loaded image.

# Two generations

Two coexisting API flavors share the same underlying machinery but differ
in staleness policy:

  - Legacy: BindSymbol lazily loads a package on first use, tolerates the
    on-disk file changing underneath it, and requires an explicit
    ReloadLegacy to pick up a new version. Bindings resolve by name and
    are migrated in place when a reload succeeds.
  - Modern: Load checks on-disk identity (device, inode, size, mtime) on
    every call and transparently swaps in a fresh Module when the file has
    changed. Modern bindings hold a direct Module reference and never
    migrate; the caller is responsible for releasing a stale one.

# Concurrency

The cache assumes a single-threaded cooperative host: all operations run
on one executor thread, and the only points where another operation may
interleave are inside blocking I/O (the Library Loader), inside a native
call (Call), or inside the injected PathResolver. Nothing in this package
uses locks; Call's pre-invoke reference is what keeps a Module alive
across a concurrent reload while a call into it is suspended.

# Dependencies

Shared libraries are opened with the pure-Go dlopen/dlsym/dlclose bindings
from ebitengine/purego; no cgo is required. Diagnostics go through the
Logger interface; a zap-backed implementation is available through
NewZapLogger, and New falls back to NopLogger when Options.Logger is nil.
The config subpackage layers viper on top for host configuration,
and the watch subpackage offers an optional fsnotify-driven trigger for
ReloadLegacy.
*/
package nativemod
