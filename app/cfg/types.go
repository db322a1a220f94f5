package cfg

// Options are the flags shared by every command
type Options struct {
	Config   string `short:"c" long:"config" env:"STAR_CONFIG" default:"config.yaml" description:"Path to configuration file"`
	EnvFile  string `long:"env-file" env:"STAR_ENV_FILE" default:".env" description:"Dotenv file loaded before the configuration"`
	Debug    bool   `long:"debug" env:"STAR_DEBUG" description:"Enable debug output"`
	LogLevel string `short:"L" long:"log-level" env:"STAR_LOG_LEVEL" default:"ERROR" description:"Set logging level (DEBUG, INFO, WARNING, ERROR, CRITICAL)"`

	Output string `short:"o" long:"output" env:"STAR_OUTPUT" description:"Output file (optional, defaults to stdout)"`
	Limit  int    `short:"l" long:"limit" env:"STAR_LIMIT" default:"5" description:"Number of feed items to include per source"`
}
