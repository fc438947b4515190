package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-importer/internal/infrastructure/config"
)

func fetchTestConfig(maxBytes int64) *config.Config {
	return &config.Config{
		Fetch: config.FetchConfig{
			Timeout:      5 * time.Second,
			MaxHTMLBytes: maxBytes,
			UserAgent:    "recipe-importer/1.0 (+https://looops.app; recipe import bot)",
		},
	}
}

func TestFetch(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Recipe</h1></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(fetchTestConfig(5 * 1024 * 1024))
	html, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "<html><body><h1>Recipe</h1></body></html>", html)
	assert.Equal(t, "recipe-importer/1.0 (+https://looops.app; recipe import bot)", gotUA)
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetchErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"forbidden", http.StatusForbidden},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			f := NewFetcher(fetchTestConfig(5 * 1024 * 1024))
			_, err := f.Fetch(context.Background(), server.URL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "page returned status")
		})
	}
}

func TestFetchEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   \n  "))
	}))
	defer server.Close()

	f := NewFetcher(fetchTestConfig(5 * 1024 * 1024))
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty body")
}

func TestFetchTruncatesOversizedPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer server.Close()

	f := NewFetcher(fetchTestConfig(1024))
	html, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, html, 1024)
}

func TestFetchUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	f := NewFetcher(fetchTestConfig(5 * 1024 * 1024))
	_, err := f.Fetch(context.Background(), addr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch page")
}
