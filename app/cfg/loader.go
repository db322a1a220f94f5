package cfg

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Version is set at build time via -ldflags
var Version = "dev"

// LevelCritical sits above slog.LevelError for --log-level CRITICAL.
const LevelCritical = slog.LevelError + 4

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// ParseLogLevel maps a level name, case-insensitively, to a slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARNING", "WARN":
		return slog.LevelWarn, nil
	case "ERROR", "":
		return slog.LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: choose from DEBUG, INFO, WARNING, ERROR, CRITICAL", name)
	}
}

// SetupLogging installs the default slog logger. --debug wins over --log-level.
func SetupLogging(w io.Writer, opts *Options) error {
	level, err := ParseLogLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// Validate checks option values the flag parser cannot express.
func (o *Options) Validate() error {
	if o.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", o.Limit)
	}
	return nil
}
