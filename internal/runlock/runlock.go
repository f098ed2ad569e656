// Package runlock keeps two subforge processes from transcribing the same
// working directory at the same time.
//
// Locks are advisory flock(2) locks on files under the state directory, so
// nothing is ever written into the working directory itself.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another process holds the lock for a directory.
var ErrLocked = errors.New("another subforge run is already processing this directory")

// Lock is a held per-directory lock.
type Lock struct {
	flock   *flock.Flock
	path    string
	workDir string
}

// PathFor returns the lock file used for workDir. The name is a UUIDv5 of
// the absolute directory path, so it is stable and filesystem-safe.
func PathFor(lockDir, workDir string) (string, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", workDir, err)
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
	return filepath.Join(lockDir, name+".lock"), nil
}

// Acquire takes the lock for workDir without blocking.
func Acquire(lockDir, workDir string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path, err := PathFor(lockDir, workDir)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", workDir, ErrLocked)
	}
	return &Lock{flock: fl, path: path, workDir: workDir}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks the directory. The lock file stays in place; removing it
// would let a waiter holding the old inode and a new Acquire both succeed.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
