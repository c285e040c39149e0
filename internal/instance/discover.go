// pattern: Imperative Shell
package instance

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const healthTimeout = 2 * time.Second

// Discover finds a running planeui instance for the given data directory
// and returns its input bridge base URL ("http://host:port"). It fails
// when no instance holds the lock, the port file is unreadable, or the
// bridge does not answer its health endpoint.
func Discover(dataDir string) (string, error) {
	running, err := instanceRunning(dataDir)
	if err != nil {
		return "", err
	}
	if !running {
		return "", fmt.Errorf("no running planeui instance found")
	}

	addr, err := readPortFile(dataDir)
	if err != nil {
		return "", err
	}

	baseURL := "http://" + addr
	if err := healthCheck(baseURL); err != nil {
		return "", err
	}
	return baseURL, nil
}

// instanceRunning probes the lock without keeping it: acquiring it means
// nothing else has it, so there is no instance to discover.
func instanceRunning(dataDir string) (bool, error) {
	fl := flock.New(lockPath(dataDir))
	locked, err := fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to check lock: %w", err)
	}
	if locked {
		_ = fl.Unlock()
		return false, nil
	}
	return true, nil
}

func readPortFile(dataDir string) (string, error) {
	data, err := os.ReadFile(portPath(dataDir))
	if err != nil {
		return "", fmt.Errorf("planeui instance detected but port file missing: %w", err)
	}
	addr := strings.TrimSpace(string(data))
	if addr == "" {
		return "", fmt.Errorf("planeui port file is empty")
	}
	return addr, nil
}

func healthCheck(baseURL string) error {
	client := &http.Client{Timeout: healthTimeout}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return fmt.Errorf("planeui instance not responding: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("planeui health check failed (status %d)", resp.StatusCode)
	}
	return nil
}
