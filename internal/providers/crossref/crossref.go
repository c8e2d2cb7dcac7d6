// Package crossref fetches supplementary publication counts from the
// CrossRef works API. CrossRef citation data is limited, so these
// counts only ever supplement the primary source.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/enikolados/sitemetrics/internal/scholar"
)

const (
	defaultBaseURL   = "https://api.crossref.org"
	defaultUserAgent = "sitemetrics/0.1"

	rows = 100
)

type Client struct {
	client  *http.Client
	baseURL string
}

func New() *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
	}
}

func (c *Client) Name() string {
	return "crossref"
}

type worksResponse struct {
	Message struct {
		Items []struct {
			IsReferencedByCount int `json:"is-referenced-by-count"`
		} `json:"items"`
	} `json:"message"`
}

// Fetch queries works by author and sums the reference counts.
func (c *Client) Fetch(ctx context.Context, authorName string) (scholar.Supplement, error) {
	if authorName == "" {
		return scholar.Supplement{}, fmt.Errorf("crossref: missing author name")
	}

	endpoint := fmt.Sprintf("%s/works?query.author=%s&rows=%d",
		c.baseURL, url.QueryEscape(authorName), rows)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return scholar.Supplement{}, fmt.Errorf("crossref: new request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return scholar.Supplement{}, fmt.Errorf("crossref: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return scholar.Supplement{}, fmt.Errorf("crossref: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return scholar.Supplement{}, fmt.Errorf("crossref: decode response: %w", err)
	}

	sup := scholar.Supplement{Publications: len(result.Message.Items)}
	for _, item := range result.Message.Items {
		sup.TotalCitations += item.IsReferencedByCount
	}
	return sup, nil
}
