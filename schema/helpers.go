package schema

import (
	"strconv"
	"strings"
)

// SanitizeRepoDir converts an owner/name identifier into a directory-safe
// name, e.g. "spring-projects/spring-boot" -> "spring-projects_spring-boot".
// Any path separator or whitespace collapses to a single underscore. The
// mapping is not injective ("a_b/c" and "a/b_c" both become "a_b_c"), so the
// result is a readable label, not a unique key: callers place it inside a
// directory unique to the run, never use it as the sole path component.
func SanitizeRepoDir(fullName string) string {
	mapper := func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '\t':
			return '_'
		}
		return r
	}
	cleaned := strings.Map(mapper, strings.TrimSpace(fullName))
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	return strings.Trim(cleaned, "_")
}

// SplitFullName splits "owner/name" into its parts. The second return is
// false when the identifier does not have exactly one separator.
func SplitFullName(fullName string) (owner, name string, ok bool) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FormatFloatPtr renders a nullable statistic for CSV output. A nil pointer
// becomes the empty string so null statistics stay distinguishable from 0.
func FormatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ParseFloatPtr is the inverse of FormatFloatPtr: the empty string becomes
// nil, anything else must parse as a float.
func ParseFloatPtr(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Float64Ptr returns a pointer to v. Summary construction uses it to fill
// nullable statistic fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
