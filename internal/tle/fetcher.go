package tle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultSourceURL is used when no source is configured.
const DefaultSourceURL = "https://celestrak.org/NORAD/elements/gp.php?GROUP=active&FORMAT=tle"

// maxBodyBytes caps a single response body.
const maxBodyBytes = 50 << 20

// errBodyTooLarge is returned when a response exceeds maxBodyBytes.
var errBodyTooLarge = errors.New("response exceeds byte limit")

// Fetcher retrieves raw TLE text from one or more sources.
type Fetcher struct {
	urls       []string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher for the given source URLs.
func NewFetcher(logger *slog.Logger, urls ...string) *Fetcher {
	if len(urls) == 0 {
		urls = []string{DefaultSourceURL}
	}
	return &Fetcher{
		urls:       urls,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// URLs returns the configured sources.
func (f *Fetcher) URLs() []string {
	return f.urls
}

// Fetch downloads every source concurrently and concatenates the bodies in
// source order. A failure of any source fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	bodies := make([][]byte, len(f.urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range f.urls {
		g.Go(func() error {
			body, err := f.fetchOne(ctx, url)
			if err != nil {
				return err
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, b := range bodies {
		buf.Write(b)
		if len(b) > 0 && b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching TLE data from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body from %s: %w", url, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%s: %w (%d byte limit)", url, errBodyTooLarge, maxBodyBytes)
	}

	f.logger.Debug("tle source fetched",
		"url", url,
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, nil
}
