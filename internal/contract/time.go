package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Matches "N [units]", e.g. "2 seconds", "3 minutes", "1 hour".
var humanDurationRe = regexp.MustCompile(`^(\d+)\s+(hour|minute|second|millisecond)s?$`)

// ParseDelay converts strings like "2s", "500ms" or "3 seconds" into a
// time.Duration. It first tries Go's built-in time.ParseDuration for standard
// formats, then falls back to human-readable formats.
func ParseDelay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	if duration, err := time.ParseDuration(s); err == nil {
		return duration, nil
	}

	matches := humanDurationRe.FindStringSubmatch(strings.ToLower(s))
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	switch matches[2] {
	case "hour":
		return time.Duration(value) * time.Hour, nil
	case "minute":
		return time.Duration(value) * time.Minute, nil
	case "second":
		return time.Duration(value) * time.Second, nil
	case "millisecond":
		return time.Duration(value) * time.Millisecond, nil
	default:
		// Should be caught by the regex, but good for safety
		return 0, errors.New("unsupported time unit")
	}
}
