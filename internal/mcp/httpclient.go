package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
	"github.com/meltforce/repwave/internal/storage"
)

// HTTPClient implements DataSource by calling the RepWave REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s: %w", path, storage.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// getTargets fetches the targets endpoint, which bundles the effective target
// with recent ledger history.
func (c *HTTPClient) getTargets(ctx context.Context, cat catalog.Category, date time.Time) (int, []models.DailyTargetRow, error) {
	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))

	body, err := c.get(ctx, "/api/v1/targets/"+string(cat), params)
	if err != nil {
		return 0, nil, err
	}

	var resp struct {
		Target  int                     `json:"target"`
		History []models.DailyTargetRow `json:"history"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, nil, fmt.Errorf("httpclient: decode targets: %w", err)
	}
	return resp.Target, resp.History, nil
}

func (c *HTTPClient) EffectiveTarget(ctx context.Context, _ int, cat catalog.Category, date time.Time) (int, error) {
	target, _, err := c.getTargets(ctx, cat, date)
	return target, err
}

func (c *HTTPClient) TargetHistory(ctx context.Context, _ int, cat catalog.Category, limit int) ([]models.DailyTargetRow, error) {
	_, history, err := c.getTargets(ctx, cat, time.Now())
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

func (c *HTTPClient) QuerySetsRange(ctx context.Context, _ int, cat catalog.Category, start, end time.Time) ([]models.LoggedSetRow, error) {
	params := url.Values{}
	params.Set("category", string(cat))
	params.Set("start", start.Format("2006-01-02"))
	// The REST API takes an inclusive end date; the interface takes an
	// exclusive end instant.
	params.Set("end", end.AddDate(0, 0, -1).Format("2006-01-02"))

	body, err := c.get(ctx, "/api/v1/sets", params)
	if err != nil {
		return nil, err
	}

	var sets []models.LoggedSetRow
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("httpclient: decode sets: %w", err)
	}
	return sets, nil
}

func (c *HTTPClient) GetMovement(ctx context.Context, userID int, cat catalog.Category) (models.MovementRow, error) {
	movements, err := c.ListMovements(ctx, userID)
	if err != nil {
		return models.MovementRow{}, err
	}
	for _, m := range movements {
		if m.Category == cat {
			return m, nil
		}
	}
	return models.MovementRow{}, fmt.Errorf("httpclient: movement %s: %w", cat, storage.ErrNotFound)
}

func (c *HTTPClient) ListMovements(ctx context.Context, _ int) ([]models.MovementRow, error) {
	body, err := c.get(ctx, "/api/v1/movements", nil)
	if err != nil {
		return nil, err
	}

	var movements []models.MovementRow
	if err := json.Unmarshal(body, &movements); err != nil {
		return nil, fmt.Errorf("httpclient: decode movements: %w", err)
	}
	return movements, nil
}

func (c *HTTPClient) QueryAssessments(ctx context.Context, _ int, cat catalog.Category, limit int) ([]models.RecoveryAssessmentRow, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/v1/assessments/"+string(cat), params)
	if err != nil {
		return nil, err
	}

	var rows []models.RecoveryAssessmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode assessments: %w", err)
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
