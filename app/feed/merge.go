package feed

import (
	"slices"
	"time"
)

// Dedupe collapses records sharing a key. The last occurrence wins while the
// position of the first occurrence is kept, so the result does not depend on
// timestamps at all.
func Dedupe[T any](records []T, key func(T) string) []T {
	index := make(map[string]int, len(records))
	unique := make([]T, 0, len(records))

	for _, record := range records {
		k := key(record)
		if i, ok := index[k]; ok {
			unique[i] = record
			continue
		}
		index[k] = len(unique)
		unique = append(unique, record)
	}

	return unique
}

// SortNewestFirst orders items by canonical timestamp, most recent first.
func SortNewestFirst(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return compareDesc(a.CreatedAt, b.CreatedAt)
	})
}

// SortParsedNewestFirst orders feed entries by their published time. Entries
// without a date go last.
func SortParsedNewestFirst(items []ParsedItem) {
	slices.SortStableFunc(items, func(a, b ParsedItem) int {
		switch {
		case a.PublishedAt == nil && b.PublishedAt == nil:
			return 0
		case a.PublishedAt == nil:
			return 1
		case b.PublishedAt == nil:
			return -1
		}
		return compareDesc(*a.PublishedAt, *b.PublishedAt)
	})
}

func sortEntriesNewestFirst(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return compareDesc(a.PublishedAt, b.PublishedAt)
	})
}

func compareDesc(a, b time.Time) int {
	return b.Compare(a)
}
