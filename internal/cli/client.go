package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	verbose    bool
	httpClient *http.Client
}

// NewClient creates a new API client. The timeout leaves room for the AI's
// paced reply, which arrives in the same response as the player's word.
func NewClient(baseURL string, verbose bool) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		verbose: verbose,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(method, path string, body, result any) error {
	target := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.verbose {
		fmt.Fprintf(os.Stderr, "%s %s -> %d (%s)\n", method, target, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(path string) error {
	return c.Do(http.MethodDelete, path, nil, nil)
}

// CreateRound starts a new round
func (c *Client) CreateRound() (Round, error) {
	var round Round
	err := c.Post("/api/v1/rounds", nil, &round)
	return round, err
}

// GetRound fetches a round's state
func (c *Client) GetRound(id string) (Round, error) {
	var round Round
	err := c.Get(roundPath(id, ""), &round)
	return round, err
}

// SubmitWord plays a word and waits for the AI's reply
func (c *Client) SubmitWord(id, word string) (SubmitResult, error) {
	var result SubmitResult
	err := c.Post(roundPath(id, "/words"), map[string]string{"word": word}, &result)
	return result, err
}

// GiveUp forfeits a round
func (c *Client) GiveUp(id string) (Round, error) {
	var round Round
	err := c.Post(roundPath(id, "/give-up"), nil, &round)
	return round, err
}

// Restart resets a round to its starting state
func (c *Client) Restart(id string) (Round, error) {
	var round Round
	err := c.Post(roundPath(id, "/restart"), nil, &round)
	return round, err
}

// DeleteRound removes a round
func (c *Client) DeleteRound(id string) error {
	return c.Delete(roundPath(id, ""))
}

func roundPath(id, suffix string) string {
	return "/api/v1/rounds/" + url.PathEscape(id) + suffix
}
