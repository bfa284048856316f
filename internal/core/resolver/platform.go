package resolver

import (
	"net/url"
	"strings"
)

// Platform identifies the video host a source URL belongs to.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformSora      Platform = "sora"
	PlatformGeneric   Platform = "generic"
)

// platformHosts is checked top to bottom; the first host fragment found wins.
var platformHosts = []struct {
	platform  Platform
	fragments []string
}{
	{PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{PlatformInstagram, []string{"instagram.com"}},
	{PlatformFacebook, []string{"facebook.com"}},
	{PlatformSora, []string{"sora.chatgpt.com"}},
}

// Classify maps a URL to its Platform. It never fails: anything unrecognised is generic.
func Classify(rawURL string) Platform {
	host := strings.ToLower(rawURL)
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = strings.ToLower(parsed.Host)
	}

	for _, entry := range platformHosts {
		for _, fragment := range entry.fragments {
			if strings.Contains(host, fragment) {
				return entry.platform
			}
		}
	}
	return PlatformGeneric
}

// usesExternalService reports whether the unblocking service is worth calling.
func (p Platform) usesExternalService() bool {
	switch p {
	case PlatformYouTube, PlatformInstagram, PlatformFacebook:
		return true
	default:
		return false
	}
}

// validateSourceURL checks the request URL before any network activity.
func validateSourceURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrMissingURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	scheme := strings.ToLower(parsed.Scheme)
	if (scheme != "http" && scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidURL
	}
	return parsed, nil
}
