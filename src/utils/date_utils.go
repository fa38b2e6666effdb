package utils

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	DateFormat      = "2006-01-02"
	DateTimeFormat  = "2006-01-02 15:04:05"
	YearMonthFormat = "2006-01"
)

// ParseDate parses a date in any of the layouts dateparse understands.
// Values are interpreted in UTC so results do not depend on the host zone.
func ParseDate(dateStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
