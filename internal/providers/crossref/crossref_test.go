package crossref

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works", r.URL.Path)
		assert.Equal(t, "Jane Example", r.URL.Query().Get("query.author"))
		fmt.Fprint(w, `{"message":{"items":[
			{"is-referenced-by-count":40},
			{"is-referenced-by-count":0},
			{"is-referenced-by-count":12}
		]}}`)
	}))
	t.Cleanup(srv.Close)

	c := New()
	c.baseURL = srv.URL

	sup, err := c.Fetch(context.Background(), "Jane Example")
	require.NoError(t, err)
	assert.Equal(t, 52, sup.TotalCitations)
	assert.Equal(t, 3, sup.Publications)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := New()
	c.baseURL = srv.URL

	_, err := c.Fetch(context.Background(), "Jane Example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchMissingAuthorName(t *testing.T) {
	_, err := New().Fetch(context.Background(), "")
	require.Error(t, err)
}
