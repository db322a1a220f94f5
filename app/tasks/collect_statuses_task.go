package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ping13/star-collector/app/config"
	"github.com/ping13/star-collector/app/feed"
	"github.com/ping13/star-collector/app/mastodon"
)

// CollectStatusesTask drains every configured collection type of one
// Mastodon account. The item limit is shared by all types.
type CollectStatusesTask struct {
	Task
	account   *config.MastodonConfig
	paginator *mastodon.Paginator
	adapter   *mastodon.Adapter
	limit     int
}

func NewCollectStatusesTask(account *config.MastodonConfig, paginator *mastodon.Paginator, adapter *mastodon.Adapter, limit int) *CollectStatusesTask {
	return &CollectStatusesTask{
		Task:      NewTask(TaskTypeCollectStatuses, account.ProfileURL()),
		account:   account,
		paginator: paginator,
		adapter:   adapter,
		limit:     limit,
	}
}

func (t *CollectStatusesTask) Execute(ctx context.Context) ([]feed.Item, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	pageSize := t.account.GetPageSize(t.limit)

	var statuses []mastodon.Status
	pages := 0
	for _, collection := range t.account.Types {
		remaining := t.limit - len(statuses)
		if remaining <= 0 {
			break
		}

		result := t.paginator.FetchAll(ctx, t.account.CollectionURL(collection, pageSize), pageSize, remaining)
		if result.Err != nil {
			slog.Warn("Collection fetch ended early",
				"collection", collection,
				"collected", len(result.Statuses),
				"error", result.Err)
		}

		pages += result.Pages
		statuses = append(statuses, result.Statuses...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	unique := feed.Dedupe(statuses, func(s mastodon.Status) string { return s.ID })

	items, err := t.adapter.Run(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to convert statuses: %w", err)
	}

	feed.SortNewestFirst(items)

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.Source,
		"duration", t.GetDuration(),
		"pages", pages,
		"fetched", len(statuses),
		"duplicates", len(statuses)-len(unique),
		"items", len(items))

	return items, nil
}
