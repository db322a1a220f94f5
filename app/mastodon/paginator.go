package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tomnomnom/linkheader"
)

// PageResult is whatever pagination managed to collect. Err records the
// failure that ended it early, if any; it is never returned as an error.
type PageResult struct {
	Statuses []Status
	Pages    int
	Err      error
}

type Paginator struct {
	httpClient  *http.Client
	accessToken string
	userAgent   string
	timeout     time.Duration
}

func NewPaginator(httpClient *http.Client, accessToken, userAgent string, timeout time.Duration) *Paginator {
	return &Paginator{
		httpClient:  httpClient,
		accessToken: accessToken,
		userAgent:   userAgent,
		timeout:     timeout,
	}
}

// FetchAll follows rel="next" links from startURL until quota statuses are
// collected, a page comes back shorter than perPage, there is no next page,
// or a request fails.
func (p *Paginator) FetchAll(ctx context.Context, startURL string, perPage, quota int) PageResult {
	var result PageResult

	url := startURL
	for len(result.Statuses) < quota {
		statuses, next, err := p.fetchPage(ctx, url)
		if err != nil {
			slog.Error("Error fetching data", "url", url, "error", err)
			result.Err = err
			break
		}
		result.Pages++

		if len(statuses) == 0 {
			break
		}
		result.Statuses = append(result.Statuses, statuses...)

		if len(statuses) < perPage || next == "" {
			break
		}
		url = next
	}

	return result
}

func (p *Paginator) fetchPage(ctx context.Context, url string) ([]Status, string, error) {
	slog.Debug("Fetching data", "url", url)

	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	var statuses []Status
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, "", fmt.Errorf("failed to decode page: %w", err)
	}

	return statuses, nextURL(resp.Header.Get("Link")), nil
}

func nextURL(header string) string {
	if header == "" {
		return ""
	}
	for _, link := range linkheader.Parse(header).FilterByRel("next") {
		if link.URL != "" {
			return link.URL
		}
	}
	return ""
}
