package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another LearnFlow process holds the data lock.
var ErrLocked = errors.New("another learnflow instance is already running")

// Lock is an exclusive advisory lock on one database file.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the single-writer lock for dbPath, held on
// "<dbPath>.lock".
func AcquireLock(dbPath string) (*Lock, error) {
	fl := flock.New(LockPath(dbPath))

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{fl: fl}, nil
}

// LockPath returns the lock file guarding dbPath.
func LockPath(dbPath string) string {
	return filepath.Clean(dbPath) + ".lock"
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
