package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// WebBackend queries a Brave-compatible web-search API over HTTP. The
// API key stays server-side; clients never see it.
type WebBackend struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewWebBackend creates a web-search backend for the given endpoint and key.
func NewWebBackend(endpoint, apiKey string) *WebBackend {
	return &WebBackend{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{},
	}
}

func (b *WebBackend) Name() string { return "web" }

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

func (b *WebBackend) Search(ctx context.Context, query string, max int) ([]Result, error) {
	u, err := url.Parse(b.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(max))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	var results []Result
	for _, r := range parsed.Web.Results {
		if len(results) >= max {
			break
		}
		results = append(results, Result{
			Title:   r.Title,
			Snippet: r.Description,
			URL:     r.URL,
		})
	}
	return results, nil
}
