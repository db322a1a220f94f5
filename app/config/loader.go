package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout   = 30 // seconds
	DefaultUserAgent = "Star Collector/1.0"
	DefaultCachePath = "title-generator.db"
	DefaultMaxWords  = 20

	AccessTokenEnv = "MASTODON_ACCESS_TOKEN"
)

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Loader handles loading and validation of the configuration file
type Loader struct {
	path    string
	envFile string
}

// NewLoader creates a new configuration loader for path
func NewLoader(path string) *Loader {
	return &Loader{path: path, envFile: ".env"}
}

// WithEnvFile sets the dotenv file read before the configuration
func (l *Loader) WithEnvFile(envFile string) *Loader {
	l.envFile = envFile
	return l
}

// Load reads, interpolates, defaults and validates the configuration
func (l *Loader) Load() (*Config, error) {
	slog.Debug("Loading configuration", "path", l.path)

	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
	}

	if token := os.Getenv(AccessTokenEnv); token != "" {
		config.Mastodon.AccessToken = token
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, l.path, err)
	}

	return &config, nil
}

// expandEnv substitutes $VAR and ${VAR} references to variables that are set.
// References to unset variables and any other "$" text are kept verbatim.
func expandEnv(data string) string {
	return envReference.ReplaceAllStringFunc(data, func(ref string) string {
		match := envReference.FindStringSubmatch(ref)
		name := match[1]
		if name == "" {
			name = match[2]
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return ref
	})
}

func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	err := godotenv.Load(l.envFile)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", l.envFile, err)
}

// setDefaults applies default values to configuration
func (l *Loader) setDefaults(config *Config) {
	if config.HTTP.Timeout == 0 {
		config.HTTP.Timeout = DefaultTimeout
	}
	if config.HTTP.UserAgent == "" {
		config.HTTP.UserAgent = DefaultUserAgent
	}
	if config.Titles.CachePath == "" {
		config.Titles.CachePath = DefaultCachePath
	}
	if config.Titles.MaxWords == 0 {
		config.Titles.MaxWords = DefaultMaxWords
	}
}

// validate validates the configuration
func (l *Loader) validate(config *Config) error {
	requiredFields := []struct {
		name  string
		value string
	}{
		{"access_token", config.Mastodon.AccessToken},
		{"mastodon_instance", config.Mastodon.Instance},
		{"mastodon_username", config.Mastodon.Username},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return fmt.Errorf("missing or empty %s in mastodon config section", field.name)
		}
	}

	if _, err := url.ParseRequestURI(config.Mastodon.Instance); err != nil {
		return fmt.Errorf("mastodon_instance is not a valid URL: %w", err)
	}

	if len(config.Mastodon.Types) == 0 {
		return fmt.Errorf("mastodon.types must list at least one collection")
	}
	for i, collection := range config.Mastodon.Types {
		if collection == "" {
			return fmt.Errorf("empty collection type at index %d", i)
		}
	}

	nonNegativeFields := map[string]int{
		"mastodon.page_size": config.Mastodon.PageSize,
		"http.timeout":       config.HTTP.Timeout,
		"titles.max_words":   config.Titles.MaxWords,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	for i, source := range config.RSS.URLs {
		if source.URL == "" {
			return fmt.Errorf("rss url at index %d is required", i)
		}
		if source.Tag == "" {
			return fmt.Errorf("rss tag at index %d is required", i)
		}
	}

	return nil
}
