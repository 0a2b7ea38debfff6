package nativemod

// Engine owns the two module caches and the collaborators the rest of the
// package needs to load, resolve and reload native modules. It is the
// process-wide state the specification's Lifecycle component initializes
// once and tears down once.
type Engine struct {
	legacy   *moduleCache
	modern   *moduleCache
	resolver PathResolver
	loader   *loader
	log      Logger

	// beforeInvoke, when set, runs after Call takes its transient pin but
	// before the native call executes. Tests use it to simulate a
	// cooperative suspension point during which a reload can run.
	beforeInvoke func()

	// invoker performs the actual native call. It defaults to a
	// purego-backed implementation; tests substitute a fake so that a
	// binding resolved against a fake Linker's made-up address never gets
	// dereferenced as real code.
	invoker invokeFunc
}

// Options configures New. StagingRoot overrides the loader's temporary
// directory; an empty value falls back to $TMPDIR, then /tmp.
type Options struct {
	StagingRoot string
	Linker      Linker
	Logger      Logger
}

// New initializes both caches and returns a ready-to-use Engine. Unlike
// the specification's init(), which can fail with OutOfMemory allocating
// the caches themselves, a Go map allocation failure is unrecoverable
// process-wide and is not modeled as a returned error here.
func New(resolver PathResolver, opts Options) *Engine {
	linker := opts.Linker
	if linker == nil {
		linker = NewLinker()
	}
	log := opts.Logger
	if log == nil {
		log = NopLogger{}
	}
	return &Engine{
		legacy:   newModuleCache(),
		modern:   newModuleCache(),
		resolver: resolver,
		loader:   newLoader(linker, opts.StagingRoot),
		log:      log,
		invoker:  invokeNative,
	}
}

// Close unrefs every Module remaining in both caches. A Module whose
// refcount does not reach zero as a result indicates a caller still holds
// it — the specification treats this as a programming error, so Close
// reports how many entries could not be freed rather than panicking; a
// host that wants strict teardown can treat a non-zero count as fatal.
func (e *Engine) Close() (leaked int) {
	for _, c := range []*moduleCache{e.legacy, e.modern} {
		for _, m := range snapshotCache(c) {
			before := m.refs
			m.unref(e.log)
			if before > 1 {
				leaked++
			}
		}
	}
	return leaked
}

func snapshotCache(c *moduleCache) []*Module {
	out := make([]*Module, 0, len(c.entries))
	for _, m := range c.entries {
		out = append(out, m)
	}
	return out
}

// LegacyCacheLen reports the number of distinct packages in the legacy
// cache, for tests asserting §8's round-trip properties.
func (e *Engine) LegacyCacheLen() int { return e.legacy.len() }

// ModernCacheLen mirrors LegacyCacheLen for the modern generation.
func (e *Engine) ModernCacheLen() int { return e.modern.len() }
