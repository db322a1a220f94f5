package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/ping13/star-collector/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func keepLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestRunValidate(t *testing.T) {
	keepLogger(t)

	valid := writeFile(t, "valid.xml", `<?xml version="1.0"?><rss version="2.0"><channel><title>T</title></channel></rss>`)
	invalid := writeFile(t, "invalid.xml", `just text`)

	assert.NoError(t, run(context.Background(), []string{"validate", valid}))
	assert.ErrorIs(t, run(context.Background(), []string{"validate", invalid}), errInvalidFeed)
	assert.Equal(t, 1, exitCode(errInvalidFeed))
}

func TestRunMissingConfig(t *testing.T) {
	keepLogger(t)

	err := run(context.Background(), []string{"-c", filepath.Join(t.TempDir(), "missing.yaml"), "--env-file", ""})
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestRunInvalidLimit(t *testing.T) {
	keepLogger(t)

	err := run(context.Background(), []string{"--limit", "0"})
	assert.Error(t, err)
}

func TestRunGenerateToFile(t *testing.T) {
	keepLogger(t)
	t.Setenv(config.AccessTokenEnv, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/favourites":
			w.Write([]byte(`[{"id":"1","created_at":"2024-03-14T12:00:00Z","visibility":"public",` +
				`"content":"<p>Hello there.</p>","url":"https://social.example/@bob/1",` +
				`"account":{"display_name":"Bob","url":"https://social.example/@bob"}}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	configPath := writeFile(t, "config.yaml", fmt.Sprintf(`
mastodon:
  access_token: "token"
  mastodon_instance: %q
  mastodon_username: "alice"
  types: [favourites]
titles:
  disable_cache: true
`, server.URL))
	output := filepath.Join(t.TempDir(), "feed.xml")

	err := run(context.Background(), []string{"-c", configPath, "--env-file", "", "-o", output})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Hello there.", parsed.Items[0].Title)
	assert.Equal(t, "Star Collection for alice", parsed.Title)
}

func TestExitCodeHelp(t *testing.T) {
	err := run(context.Background(), []string{"--help"})
	require.Error(t, err)
	assert.Equal(t, 0, exitCode(err))
	assert.False(t, errors.Is(err, errInvalidFeed))
}
