package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const maxPageSize = 40

// GetTimeout returns the timeout as time.Duration
func (s *HTTPSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second // default 30 seconds
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetPageSize returns the configured page size, or one more than the item
// limit capped at the API maximum.
func (m *MastodonConfig) GetPageSize(limit int) int {
	if m.PageSize > 0 {
		return m.PageSize
	}
	return min(maxPageSize, limit) + 1
}

// CollectionURL returns the first page URL for a collection type
func (m *MastodonConfig) CollectionURL(collection string, pageSize int) string {
	return fmt.Sprintf("%s/api/v1/%s?limit=%d",
		strings.TrimRight(m.Instance, "/"), url.PathEscape(collection), pageSize)
}

// ProfileURL returns the public profile of the configured account
func (m *MastodonConfig) ProfileURL() string {
	return fmt.Sprintf("%s/@%s", strings.TrimRight(m.Instance, "/"), m.Username)
}
