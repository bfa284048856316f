package resolver

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// MetaTags holds the display metadata found in a page's head.
type MetaTags struct {
	Title       string
	Thumbnail   string
	Description string
}

// metaPatterns matches a <meta> tag by property/name in either attribute order.
type metaPatterns []*regexp.Regexp

func newMetaPatterns(key string) metaPatterns {
	k := regexp.QuoteMeta(key)
	return metaPatterns{
		regexp.MustCompile(`(?i)<meta\s+(?:property|name)="` + k + `"\s+content="([^"]+)"`),
		regexp.MustCompile(`(?i)<meta\s+content="([^"]+)"\s+(?:property|name)="` + k + `"`),
	}
}

func (p metaPatterns) find(page string) string {
	for _, re := range p {
		if m := re.FindStringSubmatch(page); m != nil {
			return m[1]
		}
	}
	return ""
}

var (
	ogTitlePattern       = newMetaPatterns("og:title")
	ogImagePattern       = newMetaPatterns("og:image")
	twitterImagePattern  = newMetaPatterns("twitter:image")
	ogDescriptionPattern = newMetaPatterns("og:description")
	titleElementPattern  = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)

	// Video meta tags, in the order they are tried.
	videoMetaPatterns = []struct {
		name     string
		patterns metaPatterns
	}{
		{"meta:og:video:url", newMetaPatterns("og:video:url")},
		{"meta:og:video", newMetaPatterns("og:video")},
		{"meta:twitter:player:stream", newMetaPatterns("twitter:player:stream")},
	}
)

// ExtractMetaTags runs the three independent display-metadata searches.
// Each field is empty when its patterns do not match.
func ExtractMetaTags(page string) MetaTags {
	var tags MetaTags

	tags.Title = ogTitlePattern.find(page)
	if tags.Title == "" {
		if m := titleElementPattern.FindStringSubmatch(page); m != nil {
			tags.Title = m[1]
		}
	}

	tags.Thumbnail = ogImagePattern.find(page)
	if tags.Thumbnail == "" {
		tags.Thumbnail = twitterImagePattern.find(page)
	}

	tags.Description = ogDescriptionPattern.find(page)

	tags.Title = cleanText(tags.Title)
	tags.Description = cleanText(tags.Description)
	tags.Thumbnail = strings.TrimSpace(html.UnescapeString(tags.Thumbnail))

	return tags
}

// extractVideoMeta tries og:video:url, og:video and twitter:player:stream in order.
func extractVideoMeta(page string) Attempt {
	for _, vm := range videoMetaPatterns {
		if v := vm.patterns.find(page); v != "" {
			return hit(vm.name, v)
		}
	}
	return miss("meta:video")
}

func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
