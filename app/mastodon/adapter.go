package mastodon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ping13/star-collector/app/feed"
	"github.com/ping13/star-collector/app/titles"
)

const AnonymousName = "Anonymous"

// Adapter maps statuses into canonical items.
type Adapter struct {
	titler titles.Extractor
}

func NewAdapter(titler titles.Extractor) *Adapter {
	return &Adapter{titler: titler}
}

// Run converts statuses in order, dropping every non-public one. A title
// extraction failure aborts the conversion.
func (a *Adapter) Run(ctx context.Context, statuses []Status) ([]feed.Item, error) {
	items := make([]feed.Item, 0, len(statuses))

	for _, status := range statuses {
		if status.Visibility != string(feed.VisibilityPublic) {
			slog.Info("Ignoring non-public status", "id", status.ID, "visibility", status.Visibility)
			continue
		}

		item, err := a.toItem(ctx, status)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (a *Adapter) toItem(ctx context.Context, status Status) (feed.Item, error) {
	title, err := a.titler.Extract(ctx, feed.HTMLToText(status.Content))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return feed.Item{}, ctxErr
		}
		return feed.Item{}, fmt.Errorf("%w: status %s: %v", titles.ErrContract, status.ID, err)
	}

	created := feed.ParseDatetime(status.CreatedAt)

	item := feed.Item{
		ID:           status.ID,
		Title:        title,
		Content:      status.Content,
		URL:          status.URL,
		CreatedAt:    created.Time,
		RawCreatedAt: status.CreatedAt,
		Visibility:   feed.Visibility(status.Visibility),
		Categories:   []string{feed.APICategory},
		Origin:       feed.OriginAPI,
		Author: feed.Author{
			DisplayName: displayName(status.Account),
			ProfileURL:  status.Account.URL,
		},
	}

	if item.URL == "" {
		item.URL = status.URI
	}

	if status.Card != nil && isHTTP(status.Card.URL) {
		item.Card = &feed.Card{URL: status.Card.URL, Image: status.Card.Image}
	}

	for _, media := range status.MediaAttachments {
		item.Media = append(item.Media, feed.Media{
			Type:       media.Type,
			URL:        media.URL,
			PreviewURL: media.PreviewURL,
		})
	}

	return item, nil
}

func displayName(account Account) string {
	if account.DisplayName != "" {
		return account.DisplayName
	}
	return AnonymousName
}

func isHTTP(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}
