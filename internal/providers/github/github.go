package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/enikolados/sitemetrics/internal/core"
)

const (
	defaultEndpoint  = "https://api.github.com/graphql"
	defaultUserAgent = "sitemetrics/0.1"
)

const contributionsQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

type Client struct {
	client   *http.Client
	endpoint string
	token    string
}

func New(token string) *Client {
	return &Client{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: defaultEndpoint,
		token:    token,
	}
}

func (c *Client) Name() string {
	return "github"
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type calendarResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// Fetch issues the single contribution-calendar GraphQL query for
// login and converts the payload into the domain model. Any HTTP,
// GraphQL or shape problem is fatal to the caller; there are no
// retries.
func (c *Client) Fetch(ctx context.Context, login string) (core.ContributionCalendar, error) {
	if c.token == "" {
		return core.ContributionCalendar{}, fmt.Errorf("github: missing access token")
	}
	if login == "" {
		return core.ContributionCalendar{}, fmt.Errorf("github: missing login")
	}

	payload, err := json.Marshal(graphqlRequest{
		Query:     contributionsQuery,
		Variables: map[string]any{"login": login},
	})
	if err != nil {
		return core.ContributionCalendar{}, fmt.Errorf("github: marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return core.ContributionCalendar{}, fmt.Errorf("github: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return core.ContributionCalendar{}, fmt.Errorf("github: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return core.ContributionCalendar{}, fmt.Errorf("github: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.ContributionCalendar{}, fmt.Errorf("github: decode response: %w", err)
	}

	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Message)
		}
		return core.ContributionCalendar{}, fmt.Errorf("github: graphql errors: %s", strings.Join(msgs, "; "))
	}
	if result.Data.User == nil {
		return core.ContributionCalendar{}, fmt.Errorf("github: no user in response for login %q", login)
	}

	return convert(result)
}

func convert(result calendarResponse) (core.ContributionCalendar, error) {
	raw := result.Data.User.ContributionsCollection.ContributionCalendar

	cal := core.ContributionCalendar{
		Total: raw.TotalContributions,
		Weeks: make([]core.ContributionWeek, 0, len(raw.Weeks)),
	}
	for i, w := range raw.Weeks {
		week := core.ContributionWeek{
			Days: make([]core.ContributionDay, 0, len(w.ContributionDays)),
		}
		for _, d := range w.ContributionDays {
			date, err := time.Parse("2006-01-02", d.Date)
			if err != nil {
				return core.ContributionCalendar{}, fmt.Errorf("github: week %d: bad date %q: %w", i, d.Date, err)
			}
			week.Days = append(week.Days, core.ContributionDay{
				Date:  date,
				Count: d.ContributionCount,
			})
		}
		cal.Weeks = append(cal.Weeks, week)
	}

	if err := cal.Validate(); err != nil {
		return core.ContributionCalendar{}, fmt.Errorf("github: malformed calendar: %w", err)
	}
	return cal, nil
}
