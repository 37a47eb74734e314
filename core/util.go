package core

import (
	"regexp"
	"strings"
	"time"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// IsSlug reports whether s is a lowercase, dash separated slug, eg. "estacao-os".
func IsSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// NowFunc returns the current time. mockable
var NowFunc = func() time.Time { return time.Now().UTC() }
