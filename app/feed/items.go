package feed

import (
	"slices"

	"github.com/samber/lo"
)

// ToItem turns a parsed feed entry into a canonical item attributed to the
// configured feed tag.
func (p ParsedItem) ToItem(tag string) Item {
	item := Item{
		ID:           p.GUID,
		Title:        p.Title,
		Content:      p.Content,
		Description:  p.Description,
		URL:          p.Link,
		RawCreatedAt: p.RawPublished,
		Categories:   mergeCategories(p.Categories, tag),
		SourceTag:    tag,
		Source:       p.Source,
		Origin:       OriginFeed,
	}

	if p.PublishedAt != nil {
		item.CreatedAt = *p.PublishedAt
	}

	return item
}

// mergeCategories appends tag to the native categories, dropping duplicates
// and empty terms.
func mergeCategories(native []string, tag string) []string {
	categories := slices.Clone(native)
	if tag != "" {
		categories = append(categories, tag)
	}
	return lo.Uniq(lo.Filter(categories, func(c string, _ int) bool {
		return c != ""
	}))
}
