package nativemod

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// loader stages a shared library under a fresh directory and opens it,
// so that two generations of the same source file get distinct dynamic-
// linker handles instead of colliding on dlopen's own path-based cache.
type loader struct {
	linker      Linker
	stagingRoot string
}

func newLoader(linker Linker, stagingRoot string) *loader {
	if stagingRoot == "" {
		stagingRoot = stagingRootDefault()
	}
	return &loader{linker: linker, stagingRoot: stagingRoot}
}

func stagingRootDefault() string {
	if td := os.Getenv("TMPDIR"); td != "" {
		return td
	}
	return "/tmp"
}

// load stages, opens and identifies the shared library at path for logical
// package pkg. The returned Module has refs == 1; the caller decides what
// claim that single reference stands for (a cache slot, a caller's own
// hold, or a Reloader's migration target).
func (l *loader) load(path, pkg string) (*Module, error) {
	id, err := statIdentity(path)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(l.stagingRoot, "nativemod-")
	if err != nil {
		return nil, &IOError{Op: "mkdirtemp", Path: l.stagingRoot, Err: err}
	}
	staged := filepath.Join(dir, fmt.Sprintf("%s-%s%s", pkg, uuid.NewString(), filepath.Ext(path)))

	if err := copyFile(path, staged); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	handle, err := l.linker.Open(staged)
	cleanupStaging(staged, dir, nil)
	if err != nil {
		return nil, &LoadError{Path: path, Message: err.Error()}
	}

	return newModule(pkg, handle, l.linker, id), nil
}

// cleanupStaging removes the staged file and its containing directory.
// Failures here are non-fatal: the already-open handle keeps the image
// mapped regardless of whether its staging path still exists on disk.
func cleanupStaging(staged, dir string, log Logger) {
	if err := os.Remove(staged); err != nil && log != nil {
		log.Warn("unlink staged file failed", "path", staged, "error", err)
	}
	if err := os.Remove(dir); err != nil && log != nil {
		log.Warn("remove staging directory failed", "path", dir, "error", err)
	}
}

func copyFile(src, dst string) error {
	sf, err := os.Open(src)
	if err != nil {
		return &IOError{Op: "open", Path: src, Err: err}
	}
	defer sf.Close()

	fi, err := sf.Stat()
	if err != nil {
		return &IOError{Op: "stat", Path: src, Err: err}
	}

	df, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fi.Mode())
	if err != nil {
		return &IOError{Op: "create", Path: dst, Err: err}
	}
	defer df.Close()

	if _, err := io.Copy(df, sf); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	return nil
}
