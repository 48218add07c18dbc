// Package upstream holds the thin HTTP clients for the three analysis
// capabilities of the GraphQ-LLM backend: explanation, optimization, and
// efficiency estimation.
//
// Each call has exactly three outcomes: a decoded payload, capability
// unavailable (nil payload, nil error — non-2xx status or undecodable
// body), or a transport-level error wrapping ErrUnreachable. There are no
// retries; one failed round-trip means unavailable for this request.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnreachable marks transport-level failures: the backend host could not
// be reached at all, as opposed to answering with an error status.
var ErrUnreachable = errors.New("analysis backend unreachable")

// Endpoint paths on the analysis backend.
const (
	explainPath    = "/api/explanations/explain"
	optimizePath   = "/api/optimizations/optimize"
	efficiencyPath = "/api/efficiency/estimate"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("analysis backend base URL cannot be empty")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Explain requests the natural-language explanation for a query.
func (c *Client) Explain(ctx context.Context, query string) (*RawExplanation, error) {
	payload := map[string]any{"query": query, "detailed": true}
	var raw RawExplanation
	ok, err := c.postJSON(ctx, explainPath, payload, &raw)
	if err != nil || !ok {
		return nil, err
	}
	return &raw, nil
}

// Optimize requests rewrite suggestions for a query.
func (c *Client) Optimize(ctx context.Context, query string) (*RawOptimization, error) {
	payload := map[string]any{"query": query, "includeSimilarQueries": true}
	var raw RawOptimization
	ok, err := c.postJSON(ctx, optimizePath, payload, &raw)
	if err != nil || !ok {
		return nil, err
	}
	return &raw, nil
}

// EstimateEfficiency requests the performance estimate for a query. Live
// statistics are not requested; estimates come from the backend's model.
func (c *Client) EstimateEfficiency(ctx context.Context, query string) (*RawEfficiency, error) {
	payload := map[string]any{"query": query, "useLiveStats": false}
	var raw RawEfficiency
	ok, err := c.postJSON(ctx, efficiencyPath, payload, &raw)
	if err != nil || !ok {
		return nil, err
	}
	return &raw, nil
}

// postJSON performs one round-trip. The bool reports whether out was
// populated; false with a nil error is the capability-unavailable outcome.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) (bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, nil
	}
	return true, nil
}
