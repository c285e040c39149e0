// pattern: Imperative Shell
package instance

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin HTTP client for inspecting a running planeui instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client targeting the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Health checks the running instance.
func (c *Client) Health() error {
	_, err := c.get("/api/health")
	return err
}

// Sessions fetches the live session list from the running instance.
// Returns raw JSON bytes from GET /api/sessions.
func (c *Client) Sessions() ([]byte, error) {
	return c.get("/api/sessions")
}

// get performs a GET request and returns the response body.
func (c *Client) get(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to planeui: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := extractErrorMessage(body)
		return nil, fmt.Errorf("planeui returned status %d: %s", resp.StatusCode, msg)
	}

	return body, nil
}

// extractErrorMessage attempts to extract the error message from a JSON
// response body. If the body is not valid JSON or has no "error" field,
// returns the raw body string.
func extractErrorMessage(body []byte) string {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return string(body)
}
