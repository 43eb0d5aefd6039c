package network

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/source"
	"github.com/iridum-cli/iridum/util"
)

// maxBody caps a single page download.
const maxBody = 16 << 20

// Fetcher downloads pages. It never retries; a failure goes straight back to the caller.
type Fetcher struct {
	client  *http.Client
	headers HeaderFunc
}

type Option func(*Fetcher)

// WithClient replaces the shared HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithHeaders replaces the User-Agent strategy.
func WithHeaders(h HeaderFunc) Option {
	return func(f *Fetcher) {
		f.headers = h
	}
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  Client,
		headers: ProcessUserAgent(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs url and returns the body. Every failure is a *source.NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &source.NetworkError{URL: url, Cause: err}
	}
	for name, values := range f.headers() {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	log.Debugf("GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		log.Warnf("GET %s: %v", url, err)
		return nil, &source.NetworkError{URL: url, Cause: err}
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("GET %s: HTTP %d", url, resp.StatusCode)
		return nil, &source.NetworkError{
			URL:    url,
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &source.NetworkError{URL: url, Status: resp.StatusCode, Cause: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}
