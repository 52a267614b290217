// Package datapoints is the HTTP client for the mini-kep data store.
// One call: GET {base_url}/api/datapoints with name/freq and optional
// date bounds, returning the matching observations.
package datapoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const endpointPath = "/api/datapoints"

// HTTPDoer captures the subset of *http.Client the gateway relies on.
// Tests inject fake implementations to run without outbound requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Datapoint is one observation as the data store serializes it.
type Datapoint struct {
	Date  string  `json:"date"`
	Freq  string  `json:"freq"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Client fetches datapoints from one upstream base URL.
type Client struct {
	BaseURL string
	HTTP    HTTPDoer
}

// Fetch runs the datapoints query. params is the lookup parameter set
// produced by pathquery.LookupParams (name, freq, optional dates).
func (c *Client) Fetch(ctx context.Context, params url.Values) ([]Datapoint, error) {
	reqURL, err := c.buildRequestURL(params)
	if err != nil {
		return nil, err
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datapoints request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datapoints request %s failed: status=%d body=%s", reqURL, resp.StatusCode, snippet(body))
	}
	var points []Datapoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("decode datapoints response: %w", err)
	}
	return points, nil
}

func (c *Client) buildRequestURL(params url.Values) (string, error) {
	base := strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return "", errors.New("datapoints base url is empty")
	}
	u, err := url.Parse(base + endpointPath)
	if err != nil {
		return "", err
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
