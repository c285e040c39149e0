// pattern: Imperative Shell
package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileName = "planeui.lock"
	portFileName = "planeui.port"
)

func lockPath(dataDir string) string { return filepath.Join(dataDir, lockFileName) }
func portPath(dataDir string) string { return filepath.Join(dataDir, portFileName) }

// Lock enforces one engine per data directory. It creates the directory
// if needed and takes an exclusive file lock; the caller must defer
// Cleanup with the returned handle.
func Lock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	fl := flock.New(lockPath(dataDir))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another planeui instance is already running")
	}
	return fl, nil
}

// WritePort records the input bridge's listener address so that later
// invocations can find the running engine.
func WritePort(dataDir, addr string) error {
	return os.WriteFile(portPath(dataDir), []byte(addr), 0600)
}

// Cleanup removes the port file and releases the lock. Tolerates a nil
// handle so it can sit in a defer next to Lock.
func Cleanup(dataDir string, fl *flock.Flock) {
	_ = os.Remove(portPath(dataDir))
	if fl != nil {
		_ = fl.Unlock()
	}
}
