package feed

import (
	"fmt"
	"html"
	"net/url"
	"slices"
	"strings"
)

// APICategory marks every entry that came from the collection API.
const APICategory = "Mastodon"

type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Run maps item into an output entry.
func (a *Assembler) Run(item Item) Entry {
	if item.Origin == OriginAPI {
		return a.apiEntry(item)
	}
	return a.feedEntry(item)
}

func (a *Assembler) apiEntry(item Item) Entry {
	entry := Entry{
		GUID:         item.ID,
		Title:        item.Title,
		Link:         item.URL,
		PublishedAt:  item.CreatedAt,
		RawPublished: item.RawCreatedAt,
		Description:  withBacklink(item.Content, item.URL),
		Categories:   []string{APICategory},
		Origin:       OriginAPI,
		Source: &SourceRef{
			Title: "@" + item.Author.DisplayName,
			URL:   item.Author.ProfileURL,
		},
	}

	if item.Card != nil {
		entry.Enclosures = append(entry.Enclosures, Enclosure{URL: item.Card.URL, Type: "text/html"})
		if item.Card.Image != "" {
			entry.Enclosures = append(entry.Enclosures, Enclosure{URL: item.Card.Image, Type: "image/*"})
		}
	}

	for _, media := range item.Media {
		if link := media.Link(); link != "" {
			entry.Enclosures = append(entry.Enclosures, Enclosure{URL: link, Type: media.Type + "/*"})
		}
	}

	return entry
}

func (a *Assembler) feedEntry(item Item) Entry {
	entry := Entry{
		GUID:         item.ID,
		Title:        item.Title,
		Link:         item.URL,
		PublishedAt:  item.CreatedAt,
		RawPublished: item.RawCreatedAt,
		Description:  withBacklink(item.Description, item.URL),
		Categories:   slices.Clone(item.Categories),
		Source:       item.Source,
		Origin:       OriginFeed,
	}

	if item.Content != "" && item.Content != item.Description {
		entry.Content = item.Content
	}

	if entry.Source == nil {
		entry.Source = &SourceRef{Title: hostOf(item.URL), URL: item.URL}
	}

	return entry
}

func withBacklink(body, link string) string {
	if link == "" {
		return body
	}
	backlink := fmt.Sprintf(`<p><a href="%s">Original</a></p>`, html.EscapeString(link))
	if strings.TrimSpace(body) == "" {
		return backlink
	}
	return body + "\n" + backlink
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Host
}
