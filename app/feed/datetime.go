package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// RFC2822Layout is the fallback accepted after ISO-8601 fails.
	RFC2822Layout = "Mon, _2 Jan 2006 15:04:05 -0700"

	isoOutputLayout = "2006-01-02T15:04:05.999999-07:00"
)

// Naive layouts are read as UTC so the output always carries an offset.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102",
}

var ErrUnparsableDate = errors.New("unparsable date")

// DatetimeResult carries either a parsed instant or the raw value and the
// reason it was rejected.
type DatetimeResult struct {
	Time time.Time
	Raw  string
	Err  error
}

func (r DatetimeResult) OK() bool {
	return r.Err == nil
}

// String renders the instant as ISO-8601 with an explicit offset, or the raw
// value when parsing failed.
func (r DatetimeResult) String() string {
	if r.Err != nil {
		return r.Raw
	}
	return r.Time.Format(isoOutputLayout)
}

func ParseDatetime(raw string) DatetimeResult {
	value := strings.TrimSpace(raw)

	if t, ok := parseISO(value); ok {
		return DatetimeResult{Time: t, Raw: raw}
	}

	t, err := time.Parse(RFC2822Layout, value)
	if err == nil {
		return DatetimeResult{Time: t, Raw: raw}
	}

	slog.Warn("Date parsing error", "date", raw, "error", err)
	return DatetimeResult{Raw: raw, Err: fmt.Errorf("%w: %q", ErrUnparsableDate, raw)}
}

// NormalizeDatetime returns raw as an ISO-8601 string with offset. Values that
// cannot be parsed are returned unchanged.
func NormalizeDatetime(raw string) string {
	return ParseDatetime(raw).String()
}

func parseISO(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
