// Package fetch downloads raw indicator tables and caches them on disk.
//
// The cache is advisory: one CSV file per indicator, holding the fetched
// bytes verbatim. A present cache file is trusted as-is with no freshness
// check; refresh mode bypasses and overwrites it.
package fetch

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/brightside-dev/goodnews/internal/common"
	"github.com/brightside-dev/goodnews/internal/config"
)

// Client fetches indicator datasets over HTTP with a flat-file cache.
type Client struct {
	httpClient *http.Client
	dataDir    string
	quiet      bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithQuiet disables the download progress bar.
func WithQuiet() Option {
	return func(c *Client) { c.quiet = true }
}

// NewClient creates a fetcher that caches under dataDir.
func NewClient(dataDir string, opts ...Option) *Client {
	c := &Client{
		dataDir: dataDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CachePath returns the cache file for an indicator.
func (c *Client) CachePath(ind config.Indicator) string {
	return filepath.Join(c.dataDir, ind.Name+".csv")
}

// Load returns the raw table for one indicator, header row first.
//
// Without refresh, a present cache file is used directly. Otherwise the
// source is downloaded (with retry) and written to the cache; if the
// download fails but a cache exists, the cache is used with a warning.
// A failure with no usable cache is a common.ErrDataFetch.
func (c *Client) Load(ctx context.Context, ind config.Indicator, refresh bool) ([][]string, error) {
	cachePath := c.CachePath(ind)

	if !refresh {
		if table, err := readTable(cachePath); err == nil {
			slog.Info("Loading cached dataset", "indicator", ind.Name, "path", cachePath)
			return table, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Cache file unusable, re-downloading", "indicator", ind.Name, "error", err)
		}
	}

	raw, err := c.download(ctx, ind)
	if err != nil {
		// A stale cache beats no data at all.
		if table, cacheErr := readTable(cachePath); cacheErr == nil {
			slog.Warn("Download failed, falling back to cache",
				"indicator", ind.Name, "error", err)
			return table, nil
		}
		return nil, fmt.Errorf("%w: indicator %q: %v", common.ErrDataFetch, ind.Name, err)
	}

	if writeErr := c.writeCache(cachePath, raw); writeErr != nil {
		slog.Warn("Failed to write cache file", "indicator", ind.Name, "error", writeErr)
	}

	return parseTable(ind.Name, raw)
}

func (c *Client) download(ctx context.Context, ind config.Indicator) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ind.URL, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				slog.Warn("Failed to close response body", "error", closeErr)
			}
		}()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status %d from %s", resp.StatusCode, ind.URL)
			// Client errors will not heal on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return &common.RetryableError{Err: err, Retryable: false}
			}
			return err
		}

		var buf bytes.Buffer
		reader := io.Reader(resp.Body)
		if !c.quiet {
			bar := progressbar.DefaultBytes(resp.ContentLength,
				fmt.Sprintf("Downloading %s", ind.Name))
			reader = io.TeeReader(resp.Body, bar)
		}
		if _, err := io.Copy(&buf, reader); err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		body = buf.Bytes()
		return nil
	}

	err := common.WithRetry(ctx, operation, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) writeCache(path string, raw []byte) error {
	if err := os.MkdirAll(c.dataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return os.WriteFile(path, raw, 0o640)
}

func readTable(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseTable(filepath.Base(path), raw)
}

func parseTable(name string, raw []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1 // ragged rows are dropped downstream
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: malformed CSV: %v", common.ErrSchema, name, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s: table has no data rows", common.ErrSchema, name)
	}
	return records, nil
}
