package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ping13/star-collector/app/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	count int
	err   error
}

func (s stubCounter) GetTitleCount() (int, error) {
	return s.count, s.err
}

func testSnapshot() *Snapshot {
	doc := feed.NewDocument(feed.Channel{Title: "Star Collection for alice", Link: "https://social.example/@alice"})
	doc.Add(feed.Item{
		ID:        "https://blog.example.com/1",
		Title:     "Post",
		URL:       "https://blog.example.com/1",
		CreatedAt: time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC),
		Origin:    feed.OriginFeed,
	})
	doc.Finalize()

	return &Snapshot{
		Document:    doc,
		XML:         `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"></rss>`,
		GeneratedAt: time.Date(2024, 3, 14, 13, 0, 0, 0, time.UTC),
	}
}

func serve(t *testing.T, handler *Handler, apiKey string, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	NewServer(handler, apiKey).ServeHTTP(w, req)
	return w
}

func TestGetFeed(t *testing.T) {
	handler := NewHandler(testSnapshot(), nil)

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("X-Feed-Items"))
	assert.Equal(t, "2024-03-14T13:00:00Z", w.Header().Get("X-Last-Updated"))
	assert.Contains(t, w.Body.String(), `<rss version="2.0">`)
}

func TestGetFeedWithoutSnapshot(t *testing.T) {
	w := serve(t, NewHandler(nil, nil), "", httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(testSnapshot(), stubCounter{count: 7})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["entries"])
	assert.Equal(t, float64(7), body["cached_titles"])
}

func TestGetHealthTitleCountError(t *testing.T) {
	handler := NewHandler(testSnapshot(), stubCounter{err: errors.New("locked")})

	w := serve(t, handler, "", httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "cached_titles")
}

func TestAPIListEntriesRequiresKey(t *testing.T) {
	handler := NewHandler(testSnapshot(), nil)

	w := serve(t, handler, "secret", httptest.NewRequest(http.MethodGet, "/api/entries", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = serve(t, handler, "secret", req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = serve(t, handler, "secret", req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total   int                      `json:"total"`
		Entries []map[string]interface{} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Post", body.Entries[0]["title"])
	assert.Equal(t, "blog.example.com", body.Entries[0]["source"])
}

func TestAPIDisabledWithoutKey(t *testing.T) {
	w := serve(t, NewHandler(testSnapshot(), nil), "", httptest.NewRequest(http.MethodGet, "/api/entries", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
