package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"
)

type Generator struct {
	version string
	now     func() time.Time
}

func NewGenerator(version string) *Generator {
	return &Generator{
		version: version,
		now:     time.Now,
	}
}

func (g *Generator) Run(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", doc.Channel.Title, 4)
	g.writeElement(&buf, "link", doc.Channel.Link, 4)
	g.writeElement(&buf, "description", doc.Channel.Description, 4)

	lastBuildDate := g.now()
	if len(doc.Entries) > 0 && !doc.Entries[0].PublishedAt.IsZero() {
		lastBuildDate = doc.Entries[0].PublishedAt
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Star-Collector/%s", g.version), 4)

	for _, entry := range doc.Entries {
		g.writeItem(&buf, entry)
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, entry Entry) {
	buf.WriteString("    <item>\n")

	if entry.GUID != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(entry.GUID)))
		xml.EscapeText(buf, []byte(entry.GUID))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", entry.Title, 6)
	g.writeElement(buf, "link", entry.Link, 6)
	g.writeElement(buf, "description", entry.Description, 6)

	if entry.Content != "" {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(strings.ReplaceAll(entry.Content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	if !entry.PublishedAt.IsZero() {
		g.writeElement(buf, "pubDate", entry.PublishedAt.Format(time.RFC1123Z), 6)
	} else {
		g.writeElement(buf, "pubDate", entry.RawPublished, 6)
	}

	for _, category := range entry.Categories {
		g.writeElement(buf, "category", category, 6)
	}

	for _, enclosure := range entry.Enclosures {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"%d\" type=\"%s\" />\n",
			html.EscapeString(enclosure.URL),
			enclosure.Length,
			html.EscapeString(enclosure.Type)))
	}

	if entry.Source != nil && entry.Source.URL != "" {
		buf.WriteString(fmt.Sprintf("      <source url=\"%s\">", html.EscapeString(entry.Source.URL)))
		xml.EscapeText(buf, []byte(entry.Source.Title))
		buf.WriteString("</source>\n")
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
