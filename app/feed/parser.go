package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []ParsedItem, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	sources := p.rssSources(data, feed.FeedType, len(feed.Items))

	items := make([]ParsedItem, 0, len(feed.Items))
	for i, item := range feed.Items {
		normalized := p.normalizeItem(item)
		normalized.Source = sources[i]
		items = append(items, normalized)
	}

	return metadata, items, nil
}

// Validate reports whether data parses as an RSS or Atom document.
func (p *Parser) Validate(data []byte) error {
	if _, err := p.gofeedParser.Parse(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}
	return nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) ParsedItem {
	normalized := ParsedItem{
		GUID:         cmp.Or(item.GUID, item.Link),
		Title:        item.Title,
		Link:         item.Link,
		Description:  item.Description,
		Content:      item.Content,
		RawPublished: item.Published,
	}

	switch {
	case item.PublishedParsed != nil:
		normalized.PublishedAt = item.PublishedParsed
	case item.Published != "":
		if result := ParseDatetime(item.Published); result.OK() {
			normalized.PublishedAt = &result.Time
		}
	case item.UpdatedParsed != nil:
		normalized.PublishedAt = item.UpdatedParsed
		normalized.RawPublished = item.Updated
	}

	if item.Categories != nil {
		normalized.Categories = item.Categories
	}

	return normalized
}

// rssSources recovers <source> blocks, which the universal gofeed item does
// not carry. The translator keeps item order, so they line up by index.
func (p *Parser) rssSources(data []byte, feedType string, count int) []*SourceRef {
	sources := make([]*SourceRef, count)
	if feedType != "rss" {
		return sources
	}

	rssFeed, err := (&rss.Parser{}).Parse(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Failed to read RSS source elements", "error", err)
		return sources
	}

	for i, item := range rssFeed.Items {
		if i >= count {
			break
		}
		if item.Source != nil && (item.Source.Title != "" || item.Source.URL != "") {
			sources[i] = &SourceRef{Title: item.Source.Title, URL: item.Source.URL}
		}
	}

	return sources
}
