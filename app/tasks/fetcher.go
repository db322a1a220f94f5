package tasks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher performs the plain GET requests used for feeds and articles.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(httpClient *http.Client, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, _, err := f.get(ctx, url)
	return data, err
}

// FetchHTML is Fetch restricted to text/html responses.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) ([]byte, error) {
	data, contentType, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
