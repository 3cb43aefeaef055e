package domain

import (
	"net/url"
	"strings"
)

// SanitizeURL validates a free-text URL field. It returns the normalized
// absolute form when the input parses as an absolute http or https URL,
// and the empty string for anything else (relative paths, javascript:
// and other schemes, garbage). Callers treat an empty result as "field
// absent"; this function never fails.
func SanitizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return u.String()
}
