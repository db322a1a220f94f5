package feed

import (
	"time"
)

// Canonical item types

type Origin string

const (
	OriginAPI  Origin = "api"
	OriginFeed Origin = "feed"
)

type Visibility string

const (
	VisibilityPublic Visibility = "public"
)

type Item struct {
	ID           string
	Title        string
	Content      string
	Description  string // Feed items only, API items carry everything in Content
	URL          string
	CreatedAt    time.Time
	RawCreatedAt string // Native value, kept when it could not be parsed
	Author       Author
	Media        []Media
	Card         *Card
	Visibility   Visibility
	Categories   []string
	SourceTag    string
	Source       *SourceRef
	Origin       Origin
}

func (i Item) IsPublic() bool {
	return i.Origin == OriginFeed || i.Visibility == VisibilityPublic
}

type Author struct {
	DisplayName string
	ProfileURL  string
}

type Media struct {
	Type       string
	URL        string
	PreviewURL string
}

// Link prefers the preview rendition when the API offers one.
func (m Media) Link() string {
	if m.PreviewURL != "" {
		return m.PreviewURL
	}
	return m.URL
}

type Card struct {
	URL   string
	Image string
}

type SourceRef struct {
	Title string
	URL   string
}

// Feed parsing types

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

type ParsedItem struct {
	GUID         string
	Title        string
	Link         string
	Description  string
	Content      string
	PublishedAt  *time.Time
	RawPublished string
	Categories   []string
	Source       *SourceRef
}

// Output document types

type Enclosure struct {
	URL    string
	Length int64
	Type   string
}

type Entry struct {
	GUID         string
	Title        string
	Link         string
	PublishedAt  time.Time
	RawPublished string
	Description  string
	Content      string
	Categories   []string
	Enclosures   []Enclosure
	Source       *SourceRef
	Origin       Origin
}

type Channel struct {
	Title       string
	Link        string
	Description string
}
