package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastHit returns the value of the final attempt when it is a hit.
func lastHit(t *testing.T, attempts []Attempt) Attempt {
	t.Helper()
	require.NotEmpty(t, attempts)
	last := attempts[len(attempts)-1]
	require.Equal(t, OutcomeHit, last.Outcome, "expected a hit, got %+v", attempts)
	return last
}

func TestTryPlatformExtract_Instagram(t *testing.T) {
	page := "<script>{\"video_url\":\"https:\\u002f\\u002fscontent.cdninstagram.com\\u002fv\\u002ft50.mp4?efg=1\"}</script>"

	a := lastHit(t, TryPlatformExtract(PlatformInstagram, page))

	assert.Equal(t, "instagram:video_url", a.Strategy)
	assert.Equal(t, "https://scontent.cdninstagram.com/v/t50.mp4?efg=1", a.Value)
}

func TestTryPlatformExtract_InstagramXDURLFallback(t *testing.T) {
	page := "{\"xd_url\":\"https:\\U002F\\U002Fcdn.ig.com\\U002Fx.mp4\"}"

	attempts := TryPlatformExtract(PlatformInstagram, page)
	a := lastHit(t, attempts)

	require.Len(t, attempts, 2)
	assert.Equal(t, OutcomeMiss, attempts[0].Outcome)
	assert.Equal(t, "instagram:xd_url", a.Strategy)
	assert.Equal(t, "https://cdn.ig.com/x.mp4", a.Value)
}

func TestTryPlatformExtract_FacebookPriority(t *testing.T) {
	page := "{\"sd_src\":\"https://cdn/sd.mp4\",\"hd_src\":\"https:\\/\\/cdn\\/hd.mp4\"}"

	attempts := TryPlatformExtract(PlatformFacebook, page)
	a := lastHit(t, attempts)

	require.Len(t, attempts, 1, "hd_src should short-circuit the cascade")
	assert.Equal(t, "facebook:hd_src", a.Strategy)
	assert.Equal(t, "https://cdn/hd.mp4", a.Value)
}

func TestTryPlatformExtract_FacebookNativeURLCaseInsensitive(t *testing.T) {
	page := "{\"BROWSER_NATIVE_HD_URL\":\"https:\\u002f\\u002fvideo.fbcdn.net\\u002fa.mp4\"}"

	attempts := TryPlatformExtract(PlatformFacebook, page)
	a := lastHit(t, attempts)

	require.Len(t, attempts, 3)
	assert.Equal(t, "facebook:browser_native_hd_url", a.Strategy)
	assert.Equal(t, "https://video.fbcdn.net/a.mp4", a.Value)
}

func TestTryPlatformExtract_SoraOrder(t *testing.T) {
	page := `<a href="https://other.example.com/first.mp4">x</a>
<script>{"src":"https://cdn.openai.com/tmp/second.mp4?sig=1","main":"https://persistent.oaistatic.com/gen/third.mp4?se=2"}</script>`

	a := lastHit(t, TryPlatformExtract(PlatformSora, page))

	assert.Equal(t, "sora:oaistatic", a.Strategy)
	assert.Equal(t, "https://persistent.oaistatic.com/gen/third.mp4?se=2", a.Value)
}

func TestTryPlatformExtract_GenericBareMP4(t *testing.T) {
	page := `<script>var src = 'https://media.example.com/clip.mp4?t=3';</script>`

	a := lastHit(t, TryPlatformExtract(PlatformGeneric, page))

	assert.Equal(t, "mp4:bare", a.Strategy)
	assert.Equal(t, "https://media.example.com/clip.mp4?t=3", a.Value)
}

func TestTryPlatformExtract_GenericQuotedRelative(t *testing.T) {
	double := `<source src="/media/clip.mp4?x=1" type="video/mp4">`
	single := `<source src='clips/intro.mp4' type='video/mp4'>`

	a := lastHit(t, TryPlatformExtract(PlatformGeneric, double))
	assert.Equal(t, "mp4:quoted", a.Strategy)
	assert.Equal(t, "/media/clip.mp4?x=1", a.Value)

	a = lastHit(t, TryPlatformExtract(PlatformGeneric, single))
	assert.Equal(t, "mp4:quoted", a.Strategy)
	assert.Equal(t, "clips/intro.mp4", a.Value)
}

func TestTryPlatformExtract_NoMatch(t *testing.T) {
	for _, p := range []Platform{PlatformInstagram, PlatformFacebook, PlatformSora, PlatformGeneric, PlatformYouTube} {
		attempts := TryPlatformExtract(p, `<html><body>nothing here</body></html>`)
		require.Len(t, attempts, len(StrategiesFor(p)), "platform %s", p)
		for _, a := range attempts {
			assert.Equal(t, OutcomeMiss, a.Outcome, "platform %s strategy %s", p, a.Strategy)
		}
	}
}

func TestUnescapeSlashes(t *testing.T) {
	assert.Equal(t, "https://a/b", unescapeSlashes("https:\\u002f\\u002fa\\u002Fb"))
	assert.Equal(t, "https://a/b", unescapeSlashes("https:\\/\\/a\\/b"))
	assert.Equal(t, "https://a/b", unescapeSlashes("https://a/b"))
}
