package titles

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"golang.org/x/text/unicode/norm"
)

// Cached memoizes another extractor in a Store. Store failures degrade to
// calling the wrapped extractor.
type Cached struct {
	next  Extractor
	store Store
}

func NewCached(next Extractor, store Store) *Cached {
	return &Cached{next: next, store: store}
}

func (c *Cached) Extract(ctx context.Context, text string) (string, error) {
	key := CacheKey(text)

	title, ok, err := c.store.GetTitle(key)
	if err != nil {
		slog.Warn("Title cache lookup failed", "key", key, "error", err)
	} else if ok {
		slog.Debug("Title cache hit", "key", key)
		return title, nil
	}

	title, err = c.next.Extract(ctx, text)
	if err != nil {
		return "", err
	}

	if err := c.store.PutTitle(key, title); err != nil {
		slog.Warn("Title cache store failed", "key", key, "error", err)
	}

	return title, nil
}

func CacheKey(text string) string {
	hash := sha256.Sum256([]byte(norm.NFC.String(text)))
	return hex.EncodeToString(hash[:])
}
