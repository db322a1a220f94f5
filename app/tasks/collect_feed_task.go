package tasks

import (
	"context"
	"log/slog"

	"github.com/ping13/star-collector/app/config"
	"github.com/ping13/star-collector/app/feed"
)

// CollectFeedTask ingests one external feed. Fetch and parse failures leave
// the feed out of the run.
type CollectFeedTask struct {
	Task
	source           config.FeedSource
	exclusions       []string
	limit            int
	fetcher          *Fetcher
	parser           *feed.Parser
	filterer         *feed.Filterer
	contentExtractor *feed.ContentExtractor
}

func NewCollectFeedTask(source config.FeedSource, exclusions []string, limit int, fetcher *Fetcher, parser *feed.Parser, filterer *feed.Filterer, contentExtractor *feed.ContentExtractor) *CollectFeedTask {
	return &CollectFeedTask{
		Task:             NewTask(TaskTypeCollectFeed, source.URL),
		source:           source,
		exclusions:       exclusions,
		limit:            limit,
		fetcher:          fetcher,
		parser:           parser,
		filterer:         filterer,
		contentExtractor: contentExtractor,
	}
}

func (t *CollectFeedTask) Execute(ctx context.Context) ([]feed.Item, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := t.fetcher.Fetch(ctx, t.source.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Error("Failed to fetch feed", "feed", t.source.URL, "error", err)
		return nil, nil
	}

	metadata, parsed, err := t.parser.Run(data)
	if err != nil {
		slog.Error("Failed to parse feed", "feed", t.source.URL, "error", err)
		return nil, nil
	}

	feed.SortParsedNewestFirst(parsed)
	total := len(parsed)
	if len(parsed) > t.limit+1 {
		parsed = parsed[:t.limit+1]
	}

	kept, excluded := t.filterer.Run(parsed, t.exclusions)

	items := make([]feed.Item, 0, len(kept))
	for _, entry := range kept {
		if t.source.ExtractContent {
			t.extractContent(ctx, &entry)
		}
		items = append(items, entry.ToItem(t.source.Tag))
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.Source,
		"title", metadata.Title,
		"duration", t.GetDuration(),
		"total", total,
		"excluded", excluded,
		"items", len(items))

	return items, nil
}

// extractContent replaces the entry content with the readable part of the
// linked article. Failures keep the feed's own content.
func (t *CollectFeedTask) extractContent(ctx context.Context, entry *feed.ParsedItem) {
	if entry.Link == "" {
		return
	}

	data, err := t.fetcher.FetchHTML(ctx, entry.Link)
	if err != nil {
		slog.Warn("Failed to fetch article content", "url", entry.Link, "error", err)
		return
	}

	content, err := t.contentExtractor.Run(data, entry.Link)
	if err != nil {
		slog.Warn("Failed to extract content for item", "url", entry.Link, "error", err)
		return
	}

	entry.Content = content
}
