package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarJSON(weeks int) string {
	start := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC) // a Sunday
	var wk []string
	total := 0
	for w := 0; w < weeks; w++ {
		var days []string
		for d := 0; d < 7; d++ {
			date := start.AddDate(0, 0, w*7+d)
			count := (w + d) % 3
			total += count
			days = append(days, fmt.Sprintf(`{"date":%q,"contributionCount":%d}`, date.Format("2006-01-02"), count))
		}
		wk = append(wk, fmt.Sprintf(`{"contributionDays":[%s]}`, strings.Join(days, ",")))
	}
	return fmt.Sprintf(`{"data":{"user":{"contributionsCollection":{"contributionCalendar":{"totalContributions":%d,"weeks":[%s]}}}}}`,
		total, strings.Join(wk, ","))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("test-token")
	c.endpoint = srv.URL
	return c
}

func TestFetch(t *testing.T) {
	var gotAuth string
	var gotBody graphqlRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, calendarJSON(52))
	})

	cal, err := c.Fetch(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "octocat", gotBody.Variables["login"])
	assert.Len(t, cal.Weeks, 52)
	assert.Equal(t, 52*7, cal.DayCount())
	assert.Equal(t, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), cal.Weeks[0].Days[0].Date)
}

func TestFetchMissingToken(t *testing.T) {
	c := New("")
	_, err := c.Fetch(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestFetchMissingLogin(t *testing.T) {
	c := New("tok")
	_, err := c.Fetch(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}

func TestFetchHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	_, err := c.Fetch(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestFetchGraphQLErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"Could not resolve to a User"}]}`)
	})

	_, err := c.Fetch(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not resolve to a User")
}

func TestFetchNullUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"user":null}}`)
	})

	_, err := c.Fetch(context.Background(), "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user")
}

func TestFetchRejectsShortCalendar(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, calendarJSON(2))
	})

	_, err := c.Fetch(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed calendar")
}

func TestFetchRejectsBadDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
			"totalContributions":1,
			"weeks":[
				{"contributionDays":[{"date":"not-a-date","contributionCount":1}]},
				{"contributionDays":[{"date":"2026-01-11","contributionCount":0}]},
				{"contributionDays":[{"date":"2026-01-18","contributionCount":0}]},
				{"contributionDays":[{"date":"2026-01-25","contributionCount":0}]}
			]}}}}}`)
	})

	_, err := c.Fetch(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad date")
}

func TestFetchRejectsNegativeCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
			"totalContributions":1,
			"weeks":[
				{"contributionDays":[{"date":"2026-01-04","contributionCount":-2}]},
				{"contributionDays":[{"date":"2026-01-11","contributionCount":0}]},
				{"contributionDays":[{"date":"2026-01-18","contributionCount":0}]},
				{"contributionDays":[{"date":"2026-01-25","contributionCount":0}]}
			]}}}}}`)
	})

	_, err := c.Fetch(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative count")
}
