package resolver

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateGraphemes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short string untouched", "Clip", 10, "Clip"},
		{"ascii cut", "abcdef", 3, "abc..."},
		{"emoji kept whole", "👍🏽👍🏽👍🏽", 2, "👍🏽👍🏽..."},
		{"flag kept whole", "🇯🇵 Tokyo", 1, "🇯🇵..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateGraphemes(tt.in, tt.n))
		})
	}
}

func TestSlogObserver_WritesTaggedEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewSlogObserver(logger)

	obs.Classified("trace-1", "https://youtu.be/x", PlatformYouTube)
	obs.AttemptFinished("trace-1", hit("youtube:formats", "https://cdn/v.mp4"))
	obs.AttemptFinished("trace-1", failed("external:cobalt", errors.New("boom")))
	obs.AttemptFinished("trace-1", miss("meta:video"))
	obs.Resolved("trace-1", &MetadataResult{Title: "Clip", Platform: PlatformYouTube})

	out := buf.String()
	assert.Contains(t, out, "[RESOLVER] extracting for platform")
	assert.Contains(t, out, "trace_id=trace-1")
	assert.Contains(t, out, "[RESOLVER] strategy succeeded")
	assert.Contains(t, out, "[RESOLVER] strategy failed")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "[RESOLVER] strategy found nothing")
	assert.Contains(t, out, "video_url=\"NOT FOUND\"")
}

func TestNewSlogObserver_NilLoggerUsesDefault(t *testing.T) {
	obs := NewSlogObserver(nil)
	assert.Equal(t, slog.Default(), obs.logger)
}
