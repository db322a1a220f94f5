package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ping13/star-collector/app/config"
	"github.com/ping13/star-collector/app/feed"
	"github.com/ping13/star-collector/app/mastodon"
	"github.com/ping13/star-collector/app/titles"
)

// Collector runs one aggregation: every source is drained in configuration
// order, the Mastodon account first, and the result is a finalized Document.
type Collector struct {
	cfg              *config.Config
	limit            int
	httpClient       *http.Client
	titler           titles.Extractor
	parser           *feed.Parser
	filterer         *feed.Filterer
	contentExtractor *feed.ContentExtractor
}

func NewCollector(cfg *config.Config, limit int, httpClient *http.Client, titler titles.Extractor) *Collector {
	return &Collector{
		cfg:              cfg,
		limit:            limit,
		httpClient:       httpClient,
		titler:           titler,
		parser:           feed.NewParser(),
		filterer:         feed.NewFilterer(),
		contentExtractor: feed.NewContentExtractor(),
	}
}

func (c *Collector) Tasks() []TaskInterface {
	timeout := c.cfg.HTTP.GetTimeout()
	userAgent := c.cfg.HTTP.UserAgent

	paginator := mastodon.NewPaginator(c.httpClient, c.cfg.Mastodon.AccessToken, userAgent, timeout)
	adapter := mastodon.NewAdapter(c.titler)
	fetcher := NewFetcher(c.httpClient, userAgent, timeout)

	tasks := []TaskInterface{
		NewCollectStatusesTask(&c.cfg.Mastodon, paginator, adapter, c.limit),
	}
	for _, source := range c.cfg.RSS.URLs {
		tasks = append(tasks, NewCollectFeedTask(source, c.cfg.RSS.ExcludeCategories, c.limit,
			fetcher, c.parser, c.filterer, c.contentExtractor))
	}

	return tasks
}

// Run executes the tasks sequentially. Only cancellation and title
// extraction failures abort it.
func (c *Collector) Run(ctx context.Context) (*feed.Document, error) {
	started := time.Now()
	doc := feed.NewDocument(c.Channel())

	for _, task := range c.Tasks() {
		task.Start()

		items, err := task.Execute(ctx)
		if err != nil {
			slog.Error("Task execution failed", "type", string(task.GetType()), "source", task.GetSource(), "error", err)
			return nil, fmt.Errorf("%s task for %s failed: %w", task.GetType(), task.GetSource(), err)
		}

		added := doc.AddAll(items)
		slog.Debug("Items added to document", "source", task.GetSource(), "added", added)
	}

	doc.Finalize()

	slog.Info("Collection completed", "entries", doc.Len(), "duration", time.Since(started))

	return doc, nil
}

func (c *Collector) Channel() feed.Channel {
	username := c.cfg.Mastodon.Username
	return feed.Channel{
		Title:       "Star Collection for " + username,
		Link:        c.cfg.Mastodon.ProfileURL(),
		Description: fmt.Sprintf("A collection of favourites on multiple platforms by @%s", username),
	}
}
