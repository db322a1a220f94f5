package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// NewHandler serves snapshot. titles may be nil when the title cache is off.
func NewHandler(snapshot *Snapshot, titles TitleCounter) *Handler {
	return &Handler{
		snapshot: snapshot,
		titles:   titles,
	}
}

func (h *Handler) GetFeed(c *gin.Context) {
	if h.snapshot == nil || h.snapshot.Document == nil || h.snapshot.XML == "" {
		slog.Error("Feed requested before generation")
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(h.snapshot.Document.Len()))
	c.Header("X-Last-Updated", h.snapshot.GeneratedAt.Format(time.RFC3339))

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(h.snapshot.XML))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if h.snapshot != nil && h.snapshot.Document != nil {
		health["entries"] = h.snapshot.Document.Len()
		health["generated_at"] = h.snapshot.GeneratedAt.Format(time.RFC3339)
	}

	if h.titles != nil {
		if count, err := h.titles.GetTitleCount(); err == nil {
			health["cached_titles"] = count
		} else {
			slog.Error("Database error", "operation", "count_titles", "error", err)
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListEntries(c *gin.Context) {
	if h.snapshot == nil || h.snapshot.Document == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feed not generated"})
		return
	}

	entries := make([]map[string]interface{}, 0, h.snapshot.Document.Len())
	for _, entry := range h.snapshot.Document.Entries {
		info := map[string]interface{}{
			"guid":       entry.GUID,
			"title":      entry.Title,
			"link":       entry.Link,
			"origin":     entry.Origin,
			"categories": entry.Categories,
			"enclosures": len(entry.Enclosures),
		}
		if !entry.PublishedAt.IsZero() {
			info["published_at"] = entry.PublishedAt.Format(time.RFC3339)
		} else {
			info["published_at"] = entry.RawPublished
		}
		if entry.Source != nil {
			info["source"] = entry.Source.Title
		}
		entries = append(entries, info)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"channel": h.snapshot.Document.Channel,
		"entries": entries,
		"total":   len(entries),
	})
}
