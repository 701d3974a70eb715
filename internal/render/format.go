package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/inkhive/pkg/blog"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts a format name case-insensitively. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// InvalidDate is shown in place of a missing or unparseable timestamp.
const InvalidDate = "Invalid Date"

const dateLayout = "01/02/2006"

// FormatDate renders ts as MM/DD/YYYY in loc.
func FormatDate(ts blog.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return InvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(dateLayout)
}

// FormatDateString parses s with blog.ParseTimestamp before formatting it.
func FormatDateString(s string, loc *time.Location) string {
	ts, err := blog.ParseTimestamp(s)
	if err != nil {
		return InvalidDate
	}
	return FormatDate(ts, loc)
}
