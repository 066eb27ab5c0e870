package logbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// logSetEntry mirrors the server's set entry shape without importing the
// server package (which would pull in chi and other server-side
// dependencies).
type logSetEntry struct {
	Reps        int  `json:"reps"`
	RPE         *int `json:"rpe,omitempty"`
	IsMaxEffort bool `json:"is_max_effort,omitempty"`
}

type logSetsRequest struct {
	Category string        `json:"category"`
	Date     string        `json:"date,omitempty"`
	Sets     []logSetEntry `json:"sets"`
}

type maxEffortRequest struct {
	Category string `json:"category"`
	Reps     int    `json:"reps"`
	Date     string `json:"date,omitempty"`
}

type readinessRequest struct {
	Score int    `json:"score"`
	Date  string `json:"date,omitempty"`
}

// Client sends logged training data to the RepWave server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the RepWave server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SendSets POSTs a batch of sets for one category and day.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendSets(category, day string, sets []PendingSet) error {
	req := logSetsRequest{Category: category, Date: day}
	for _, s := range sets {
		req.Sets = append(req.Sets, logSetEntry{
			Reps:        s.Reps,
			RPE:         s.RPE,
			IsMaxEffort: s.IsMaxEffort,
		})
	}
	return c.post("/api/v1/sets", req)
}

// SendMaxEffort records a max-effort test on the server.
func (c *Client) SendMaxEffort(category, day string, reps int) error {
	return c.post("/api/v1/max-effort", maxEffortRequest{Category: category, Reps: reps, Date: day})
}

// SendReadiness records a morning readiness score on the server.
func (c *Client) SendReadiness(day string, score int) error {
	return c.post("/api/v1/readiness", readinessRequest{Score: score, Date: day})
}

func (c *Client) post(path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+path, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("%s failed (status %d): %s", path, resp.StatusCode, body)

		// Client errors will not get better on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}

	return fmt.Errorf("after retries: %w", lastErr)
}
