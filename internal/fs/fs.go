// Package fs provides the filesystem abstraction used by the requirement
// store.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the store needs
//   - [Real]: production implementation using the [os] package
//   - [Locker]: a held lock, released with Close
//
// Category files are rewritten whole on every mutation, so the interface is
// deliberately small: whole-file reads, atomic whole-file writes, directory
// listing, and an exclusive per-path lock for cross-process coordination.
package fs

import (
	"io"
	"os"
)

// Locker represents a held file lock.
// Call [Locker.Close] to release the lock.
//
// Example:
//
//	lock, err := fsys.Lock("general.md")
//	if err != nil {
//	    return err // lock contention or timeout
//	}
//	defer lock.Close() // always release
type Locker interface {
	io.Closer
}

// FS defines the filesystem operations used by the store.
//
// [Real] is the production implementation. Tests substitute failing
// implementations to exercise error paths.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so a crash never leaves a partial file:
	// either the new content is fully in place or the old content remains.
	// perm applies to newly created files; an existing file keeps its mode
	// across the replacement.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	// Returns [os.ErrNotExist] if the file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error

	// Lock acquires an exclusive lock scoped to path.
	// Blocks until the lock is acquired or returns an error on timeout.
	// Call [Locker.Close] to release the lock.
	//
	// Used for coordinating mutations between processes. In-process
	// coordination is the caller's job (flock is per-process, not
	// per-goroutine).
	Lock(path string) (Locker, error)
}
