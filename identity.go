package nativemod

import (
	"os"
	"syscall"
	"time"
)

// Identity is the on-disk fingerprint captured at load time and compared on
// every modern-generation lookup to detect a file that changed underneath a
// cached Module.
type Identity struct {
	Device uint64
	Inode  uint64
	Size   int64
	Mtime  time.Time
}

// Equal reports whether two identities refer to the same file content as
// far as this cache can tell without hashing bytes.
func (id Identity) Equal(other Identity) bool {
	return id.Device == other.Device &&
		id.Inode == other.Inode &&
		id.Size == other.Size &&
		id.Mtime.Equal(other.Mtime)
}

// statIdentity stats path and returns its Identity, wrapping syscall
// failures as an IOError.
func statIdentity(path string) (Identity, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Identity{}, &IOError{Op: "stat", Path: path, Err: err}
	}
	sys, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		// Platforms without a POSIX stat_t (unsupported by this cache) still
		// get a usable-if-degraded identity from size and mtime alone.
		return Identity{Size: fi.Size(), Mtime: fi.ModTime()}, nil
	}
	return Identity{
		Device: uint64(sys.Dev),
		Inode:  uint64(sys.Ino),
		Size:   fi.Size(),
		Mtime:  fi.ModTime(),
	}, nil
}
