package tle

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveText(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

// Responses beyond 50 MB must fail instead of consuming unbounded memory.
func TestFetcherBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		chunk := strings.Repeat("A", 1024*1024)
		for range 52 {
			if _, err := w.Write([]byte(chunk)); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	_, err := NewFetcher(testLogger, server.URL).Fetch(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBodyTooLarge)
	assert.Contains(t, err.Error(), "byte limit")
}

func TestFetcherSuccess(t *testing.T) {
	body := tleText(issBlock)
	server := serveText(body)
	defer server.Close()

	data, err := NewFetcher(testLogger, server.URL).Fetch(t.Context())
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestFetcherHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewFetcher(testLogger, server.URL).Fetch(t.Context())
	assert.Error(t, err)
}

// Sources are concatenated in configuration order, and a body without a
// trailing newline must not glue onto the next source.
func TestFetcherMultipleSources(t *testing.T) {
	first := serveText(strings.TrimSuffix(tleText(starlinkBlock), "\n"))
	defer first.Close()
	second := serveText(tleText(issBlock))
	defer second.Close()

	data, err := NewFetcher(testLogger, first.URL, second.URL).Fetch(t.Context())
	require.NoError(t, err)

	entries, err := Parse(strings.NewReader(string(data)), testLogger)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 44713, entries[0].NORADID)
	assert.Equal(t, 25544, entries[1].NORADID)
}

func TestFetcherAnySourceFailure(t *testing.T) {
	ok := serveText(tleText(starlinkBlock))
	defer ok.Close()
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	_, err := NewFetcher(testLogger, ok.URL, failing.URL).Fetch(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetcherDefaultURL(t *testing.T) {
	assert.Equal(t, []string{DefaultSourceURL}, NewFetcher(testLogger).URLs())
}
