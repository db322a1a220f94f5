package feed

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run drops every entry whose categories intersect exclusions and returns the
// survivors together with the number of dropped entries.
func (f *Filterer) Run(items []ParsedItem, exclusions []string) ([]ParsedItem, int) {
	if len(exclusions) == 0 {
		return items, 0
	}

	kept := make([]ParsedItem, 0, len(items))
	excluded := 0
	for _, item := range items {
		if reason := f.filterReason(item.Categories, exclusions); reason != "" {
			slog.Debug("Entry excluded", "title", item.Title, "link", item.Link, "reason", reason)
			excluded++
			continue
		}
		kept = append(kept, item)
	}

	return kept, excluded
}

// IsExcluded reports whether any tag is a member of exclusions. Untagged items
// are never excluded.
func (f *Filterer) IsExcluded(tags []string, exclusions []string) bool {
	if len(tags) == 0 || len(exclusions) == 0 {
		return false
	}
	return lo.Some(tags, exclusions)
}

func (f *Filterer) filterReason(tags []string, exclusions []string) string {
	if !f.IsExcluded(tags, exclusions) {
		return ""
	}
	return fmt.Sprintf("Excluded by categories filter: contains %v", lo.Intersect(tags, exclusions))
}
