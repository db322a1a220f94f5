package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validConfig = `
mastodon:
  access_token: "secret"
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
  types:
    - favourites
    - bookmarks

rss:
  urls:
    - url: "https://blog.example.com/feed.xml"
      tag: "blog"
  exclude_categories:
    - draft
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	t.Setenv(AccessTokenEnv, "")

	config, err := NewLoader(writeConfig(t, validConfig)).WithEnvFile("").Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.Mastodon.AccessToken != "secret" {
		t.Errorf("Expected access token 'secret', got: %s", config.Mastodon.AccessToken)
	}
	if len(config.Mastodon.Types) != 2 || config.Mastodon.Types[1] != "bookmarks" {
		t.Errorf("Expected two collection types, got: %v", config.Mastodon.Types)
	}
	if len(config.RSS.URLs) != 1 || config.RSS.URLs[0].Tag != "blog" {
		t.Errorf("Expected one tagged feed, got: %+v", config.RSS.URLs)
	}
	if len(config.RSS.ExcludeCategories) != 1 || config.RSS.ExcludeCategories[0] != "draft" {
		t.Errorf("Expected exclusion 'draft', got: %v", config.RSS.ExcludeCategories)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv(AccessTokenEnv, "")

	config, err := NewLoader(writeConfig(t, validConfig)).WithEnvFile("").Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.HTTP.GetTimeout() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got: %v", config.HTTP.GetTimeout())
	}
	if config.HTTP.UserAgent != DefaultUserAgent {
		t.Errorf("Expected default user agent, got: %s", config.HTTP.UserAgent)
	}
	if config.Titles.CachePath != DefaultCachePath {
		t.Errorf("Expected default cache path, got: %s", config.Titles.CachePath)
	}
	if config.Titles.MaxWords != DefaultMaxWords {
		t.Errorf("Expected %d max words, got: %d", DefaultMaxWords, config.Titles.MaxWords)
	}
	if config.Titles.DisableCache {
		t.Error("Expected title cache enabled by default")
	}
}

func TestLoadAccessTokenFromEnvironment(t *testing.T) {
	t.Setenv(AccessTokenEnv, "from-env")

	config, err := NewLoader(writeConfig(t, validConfig)).WithEnvFile("").Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.Mastodon.AccessToken != "from-env" {
		t.Errorf("Expected environment token to win, got: %s", config.Mastodon.AccessToken)
	}
}

func TestLoadAccessTokenFromEnvFile(t *testing.T) {
	t.Setenv(AccessTokenEnv, "")
	os.Unsetenv(AccessTokenEnv)

	content := `
mastodon:
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
  types: [favourites]
`
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(AccessTokenEnv+"=dotenv-token\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	config, err := NewLoader(writeConfig(t, content)).WithEnvFile(envFile).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.Mastodon.AccessToken != "dotenv-token" {
		t.Errorf("Expected token from env file, got: %s", config.Mastodon.AccessToken)
	}
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv(AccessTokenEnv, "")
	t.Setenv("STAR_TEST_INSTANCE", "https://expanded.example")

	content := `
mastodon:
  access_token: "secret"
  mastodon_instance: "${STAR_TEST_INSTANCE}"
  mastodon_username: "alice"
  types: [favourites]
`
	config, err := NewLoader(writeConfig(t, content)).WithEnvFile("").Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.Mastodon.Instance != "https://expanded.example" {
		t.Errorf("Expected expanded instance, got: %s", config.Mastodon.Instance)
	}
}

func TestLoadKeepsLiteralDollarSigns(t *testing.T) {
	t.Setenv(AccessTokenEnv, "")
	for _, name := range []string{"cd", "STAR_TEST_UNSET"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	content := `
mastodon:
  access_token: "ab$cd"
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
  types: [favourites]

rss:
  urls:
    - url: "https://blog.example.com/feed.xml?price=$5&id=${STAR_TEST_UNSET}"
      tag: "blog"
`
	config, err := NewLoader(writeConfig(t, content)).WithEnvFile("").Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.Mastodon.AccessToken != "ab$cd" {
		t.Errorf("Expected access token ab$cd, got: %s", config.Mastodon.AccessToken)
	}
	expected := "https://blog.example.com/feed.xml?price=$5&id=${STAR_TEST_UNSET}"
	if config.RSS.URLs[0].URL != expected {
		t.Errorf("Expected url %s, got: %s", expected, config.RSS.URLs[0].URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).WithEnvFile("").Load()

	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got: %v", err)
	}
}

func TestLoadMissingRequiredFields(t *testing.T) {
	t.Setenv(AccessTokenEnv, "")

	tests := []struct {
		name    string
		content string
	}{
		{"no access token", `
mastodon:
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
  types: [favourites]
`},
		{"no instance", `
mastodon:
  access_token: "secret"
  mastodon_username: "alice"
  types: [favourites]
`},
		{"no username", `
mastodon:
  access_token: "secret"
  mastodon_instance: "https://social.example"
  types: [favourites]
`},
		{"no types", `
mastodon:
  access_token: "secret"
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
`},
		{"feed without tag", `
mastodon:
  access_token: "secret"
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
  types: [favourites]
rss:
  urls:
    - url: "https://blog.example.com/feed.xml"
`},
		{"negative timeout", `
mastodon:
  access_token: "secret"
  mastodon_instance: "https://social.example"
  mastodon_username: "alice"
  types: [favourites]
http:
  timeout: -1
`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, test.content)).WithEnvFile("").Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := NewLoader(writeConfig(t, "mastodon: [unclosed")).WithEnvFile("").Load()

	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestMastodonHelpers(t *testing.T) {
	m := MastodonConfig{Instance: "https://social.example/", Username: "alice"}

	if got := m.GetPageSize(5); got != 6 {
		t.Errorf("Expected page size 6, got: %d", got)
	}
	if got := m.GetPageSize(100); got != 41 {
		t.Errorf("Expected page size capped at 41, got: %d", got)
	}

	m.PageSize = 3
	if got := m.GetPageSize(5); got != 3 {
		t.Errorf("Expected configured page size 3, got: %d", got)
	}

	if got := m.CollectionURL("favourites", 6); got != "https://social.example/api/v1/favourites?limit=6" {
		t.Errorf("Unexpected collection URL: %s", got)
	}
	if got := m.ProfileURL(); got != "https://social.example/@alice" {
		t.Errorf("Unexpected profile URL: %s", got)
	}
}
