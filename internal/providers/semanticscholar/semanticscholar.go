// Package semanticscholar fetches author citation metrics from the
// Semantic Scholar graph API, which is far more reliable than scraping
// a profile page.
package semanticscholar

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
	defaultBaseURL   = "https://api.semanticscholar.org/graph/v1"
	defaultUserAgent = "sitemetrics/0.1"

	searchLimit = 5
	// i10Threshold is the citation count a paper needs to count toward
	// the i10-index.
	i10Threshold = 10
)

type Client struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

func New() *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		now:     time.Now,
	}
}

func (c *Client) Name() string {
	return "semanticscholar"
}

type searchResponse struct {
	Data []struct {
		AuthorID string `json:"authorId"`
		Name     string `json:"name"`
	} `json:"data"`
}

type authorResponse struct {
	Name             string `json:"name"`
	HIndex           int    `json:"hIndex"`
	CitationCount    int    `json:"citationCount"`
	PublicationCount int    `json:"publicationCount"`
	Papers           []struct {
		CitationCount int `json:"citationCount"`
	} `json:"papers"`
}

// Fetch searches for the author by name, picks the first candidate
// whose name contains the family name, and builds a metrics record
// from the author detail payload. The i10-index is computed client
// side from the per-paper citation counts.
func (c *Client) Fetch(ctx context.Context, authorName string) (scholar.Metrics, error) {
	if authorName == "" {
		return scholar.Metrics{}, fmt.Errorf("semanticscholar: missing author name")
	}

	authorID, err := c.searchAuthor(ctx, authorName)
	if err != nil {
		return scholar.Metrics{}, err
	}

	author, err := c.fetchAuthor(ctx, authorID)
	if err != nil {
		return scholar.Metrics{}, err
	}

	i10 := 0
	for _, p := range author.Papers {
		if p.CitationCount >= i10Threshold {
			i10++
		}
	}

	name := author.Name
	if name == "" {
		name = authorName
	}

	return scholar.Metrics{
		HIndex:            author.HIndex,
		I10Index:          i10,
		TotalCitations:    author.CitationCount,
		PublicationsCount: author.PublicationCount,
		LastUpdated:       c.now().UTC().Format("2006-01-02"),
		Source:            "Semantic Scholar",
		AuthorName:        name,
	}, nil
}

func (c *Client) searchAuthor(ctx context.Context, authorName string) (string, error) {
	endpoint := fmt.Sprintf("%s/author/search?query=%s&limit=%d",
		c.baseURL, url.QueryEscape(authorName), searchLimit)

	var result searchResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return "", fmt.Errorf("semanticscholar: search author: %w", err)
	}

	family := familyName(authorName)
	for _, a := range result.Data {
		if strings.Contains(a.Name, family) {
			return a.AuthorID, nil
		}
	}
	return "", fmt.Errorf("semanticscholar: no author matching %q", authorName)
}

func (c *Client) fetchAuthor(ctx context.Context, authorID string) (*authorResponse, error) {
	endpoint := fmt.Sprintf("%s/author/%s?fields=%s",
		c.baseURL, url.PathEscape(authorID),
		url.QueryEscape("name,hIndex,citationCount,publicationCount,papers.citationCount"))

	var author authorResponse
	if err := c.getJSON(ctx, endpoint, &author); err != nil {
		return nil, fmt.Errorf("semanticscholar: fetch author %s: %w", authorID, err)
	}
	return &author, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// familyName picks the last whitespace-separated token of a full name,
// the part author records are matched on.
func familyName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[len(fields)-1]
}
