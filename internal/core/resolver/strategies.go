package resolver

import (
	"regexp"
	"strings"
)

// Strategy is one deep-extraction rule: a pure function over the raw page text.
// Extract returns ("", nil) when it finds nothing and a non-nil error when it
// could not evaluate the page (for example, a malformed embedded JSON blob).
type Strategy struct {
	Name    string
	Extract func(page string) (string, error)
}

func (s Strategy) run(page string) Attempt {
	value, err := s.Extract(page)
	switch {
	case err != nil:
		return failed(s.Name, err)
	case value == "":
		return miss(s.Name)
	default:
		return hit(s.Name, value)
	}
}

// patternStrategy returns the first capture group (or the whole match when the
// pattern has none) with escaped slashes decoded.
func patternStrategy(name, pattern string) Strategy {
	re := regexp.MustCompile(pattern)
	return Strategy{
		Name: name,
		Extract: func(page string) (string, error) {
			m := re.FindStringSubmatch(page)
			if m == nil {
				return "", nil
			}
			for _, group := range m[1:] {
				if group != "" {
					return unescapeSlashes(group), nil
				}
			}
			return unescapeSlashes(m[0]), nil
		},
	}
}

var escapedSlash = regexp.MustCompile(`(?i)\\u002f`)

// unescapeSlashes decodes \u002f and \/ sequences left in JSON-in-HTML strings.
func unescapeSlashes(s string) string {
	s = escapedSlash.ReplaceAllString(s, "/")
	return strings.ReplaceAll(s, `\/`, "/")
}

// mp4Strategies are shared by sora and generic pages, most specific first.
var mp4Strategies = []Strategy{
	patternStrategy("sora:oaistatic", `(?i)"(https://persistent\.oaistatic\.com/[^"]+\.mp4(?:\?[^"]+)?)"`),
	patternStrategy("sora:openai-cdn", `(?i)"(https://cdn\.openai\.com/[^"]+\.mp4(?:\?[^"]+)?)"`),
	patternStrategy("mp4:bare", `(?i)https?://[^"']+\.mp4[^"']*`),
	patternStrategy("mp4:quoted", `(?i)"([^"]+\.mp4(?:\?[^"]+)?)"|'([^']+\.mp4(?:\?[^']+)?)'`),
}

// platformStrategies lists the deep-extraction rules per platform in priority order.
var platformStrategies = map[Platform][]Strategy{
	PlatformYouTube: {
		{Name: "youtube:player-response", Extract: extractYouTube},
	},
	PlatformInstagram: {
		patternStrategy("instagram:video_url", `"video_url":"([^"]+)"`),
		patternStrategy("instagram:xd_url", `"xd_url":"([^"]+)"`),
	},
	PlatformFacebook: {
		patternStrategy("facebook:hd_src", `"hd_src":"([^"]+)"`),
		patternStrategy("facebook:sd_src", `"sd_src":"([^"]+)"`),
		patternStrategy("facebook:browser_native_hd_url", `(?i)"browser_native_hd_url":"([^"]+)"`),
	},
	PlatformSora:    mp4Strategies,
	PlatformGeneric: mp4Strategies,
}

// StrategiesFor returns the deep-extraction strategies for a platform.
func StrategiesFor(p Platform) []Strategy {
	return platformStrategies[p]
}

// TryPlatformExtract runs the platform's strategies in order and stops at the
// first hit. Every attempt made is returned; the last one is the hit, if any.
func TryPlatformExtract(p Platform, page string) []Attempt {
	strategies := StrategiesFor(p)
	attempts := make([]Attempt, 0, len(strategies))
	for _, s := range strategies {
		a := s.run(page)
		attempts = append(attempts, a)
		if a.Outcome == OutcomeHit {
			break
		}
	}
	return attempts
}
