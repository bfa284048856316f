package resolver

import (
	"net/url"
	"strings"
)

// Normalize turns an extracted candidate into an absolute URL relative to the
// page it was found on. Entity decoding happens first, and protocol-relative
// URLs are checked before site-relative ones because both start with "/".
func Normalize(candidate, pageURL string) string {
	s := strings.ReplaceAll(candidate, "&amp;", "&")

	switch {
	case strings.HasPrefix(s, "//"):
		return "https:" + s
	case strings.HasPrefix(s, "/"):
		return origin(pageURL) + s
	default:
		return s
	}
}

// origin returns scheme://host of a URL, or "" when it cannot be parsed.
func origin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
