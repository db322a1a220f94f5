package config

// Config represents a complete star collector configuration
type Config struct {
	Mastodon MastodonConfig `yaml:"mastodon"`
	RSS      RSSConfig      `yaml:"rss"`
	HTTP     HTTPSettings   `yaml:"http"`
	Titles   TitleSettings  `yaml:"titles"`
}

// MastodonConfig describes the account whose collections are pulled
type MastodonConfig struct {
	AccessToken string   `yaml:"access_token"`
	Instance    string   `yaml:"mastodon_instance"`
	Username    string   `yaml:"mastodon_username"`
	Types       []string `yaml:"types"`     // e.g. favourites, bookmarks
	PageSize    int      `yaml:"page_size"` // 0 derives it from the item limit
}

// RSSConfig lists external feeds merged into the output
type RSSConfig struct {
	URLs              []FeedSource `yaml:"urls"`
	ExcludeCategories []string     `yaml:"exclude_categories"`
}

// FeedSource is one external feed and the tag attached to its entries
type FeedSource struct {
	URL            string `yaml:"url"`
	Tag            string `yaml:"tag"`
	ExtractContent bool   `yaml:"extract_content"`
}

// HTTPSettings applies to every outgoing request
type HTTPSettings struct {
	Timeout   int    `yaml:"timeout"` // seconds
	UserAgent string `yaml:"user_agent"`
}

// TitleSettings configures title derivation for API items
type TitleSettings struct {
	CachePath    string `yaml:"cache_path"`
	DisableCache bool   `yaml:"disable_cache"`
	MaxWords     int    `yaml:"max_words"`
}
