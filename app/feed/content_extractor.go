package feed

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"codeberg.org/readeck/go-readability"
)

var ErrNoReadableContent = errors.New("no readable content")

// ContentExtractor pulls the main article body out of a web page.
type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Run extracts the article from page. Relative links in the result are
// resolved against pageURL when it is a valid absolute URL.
func (e *ContentExtractor) Run(page []byte, pageURL string) (string, error) {
	if len(page) == 0 {
		return "", fmt.Errorf("%w: empty page", ErrNoReadableContent)
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(bytes.NewReader(page), base)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("%w: %s", ErrNoReadableContent, pageURL)
	}

	slog.Debug("Article extracted", "url", pageURL, "title", article.Title, "content_length", len(article.Content))

	return article.Content, nil
}
