// Package grt fetches and parses the GRT Jewels rate board.
package grt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

	cacheFilePrefix = "GRT_Home_Page_"
	cacheFileLayout = "20060102150405"
)

// ErrTransport wraps network failures and non-success responses.
var ErrTransport = errors.New("grt: transport failure")

type Client struct {
	url       string
	cachePath string
	client    *resty.Client
	logger    zerolog.Logger
}

// Page is one fetched copy of the home page.
type Page struct {
	Body      []byte
	CacheFile string
	Status    int
}

func (p *Page) Text() string {
	return string(p.Body)
}

func NewClient(url, cachePath string, timeout time.Duration, logger zerolog.Logger) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeaders(map[string]string{
		"upgrade-insecure-requests": "1",
		"user-agent":                UserAgent,
	})

	return &Client{
		url:       url,
		cachePath: cachePath,
		client:    client,
		logger:    logger,
	}
}

// CacheFileName names the snapshot written for a run started at t.
func CacheFileName(t time.Time) string {
	return cacheFilePrefix + t.Format(cacheFileLayout) + ".html"
}

// FetchHomePage issues a single GET and writes the raw body to the cache
// directory before checking the status, so failed pages are kept for audit.
func (c *Client) FetchHomePage(ctx context.Context, runStart time.Time) (*Page, error) {
	if err := os.MkdirAll(c.cachePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", c.cachePath, err)
	}

	start := time.Now()
	resp, err := c.client.R().SetContext(ctx).Get(c.url)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("url", c.url).Dur("elapsed", elapsed).Msg("GRT request failed")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	page := &Page{
		Body:      resp.Body(),
		CacheFile: filepath.Join(c.cachePath, CacheFileName(runStart)),
		Status:    resp.StatusCode(),
	}
	if err := os.WriteFile(page.CacheFile, page.Body, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write cache file %s: %w", page.CacheFile, err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn().Str("url", c.url).Int("status", page.Status).Dur("elapsed", elapsed).Msg("GRT non-OK response")
		return nil, fmt.Errorf("%w: status %d from %s", ErrTransport, page.Status, c.url)
	}

	c.logger.Info().
		Str("url", c.url).
		Int("status", page.Status).
		Int("bytes", len(page.Body)).
		Str("cache_file", page.CacheFile).
		Dur("elapsed", elapsed).
		Msg("GRT home page fetched")

	return page, nil
}
