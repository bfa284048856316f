package resolver

import (
	"log/slog"
	"strings"

	"github.com/rivo/uniseg"
)

// Observer receives diagnostic events from a resolution. Implementations must
// not block; the resolver calls them inline.
type Observer interface {
	Classified(traceID, sourceURL string, platform Platform)
	AttemptFinished(traceID string, attempt Attempt)
	Degraded(traceID, sourceURL string, err error)
	Resolved(traceID string, result *MetadataResult)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) Classified(string, string, Platform) {}
func (NopObserver) AttemptFinished(string, Attempt) {}
func (NopObserver) Degraded(string, string, error) {}
func (NopObserver) Resolved(string, *MetadataResult) {}

// logTitleGraphemes is how much of a title is written to the log.
const logTitleGraphemes = 30

// SlogObserver writes resolution events through a slog.Logger.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an observer; a nil logger means slog.Default().
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) Classified(traceID, sourceURL string, platform Platform) {
	o.logger.Info("[RESOLVER] extracting for platform",
		"trace_id", traceID,
		"url", sourceURL,
		"platform", platform,
	)
}

func (o *SlogObserver) AttemptFinished(traceID string, attempt Attempt) {
	switch attempt.Outcome {
	case OutcomeHit:
		o.logger.Info("[RESOLVER] strategy succeeded",
			"trace_id", traceID,
			"strategy", attempt.Strategy,
			"value", truncateGraphemes(attempt.Value, 50),
		)
	case OutcomeError:
		o.logger.Warn("[RESOLVER] strategy failed",
			"trace_id", traceID,
			"strategy", attempt.Strategy,
			"error", attempt.Err,
		)
	default:
		o.logger.Debug("[RESOLVER] strategy found nothing",
			"trace_id", traceID,
			"strategy", attempt.Strategy,
		)
	}
}

func (o *SlogObserver) Degraded(traceID, sourceURL string, err error) {
	o.logger.Error("[RESOLVER] metadata fetch error, returning fallback metadata",
		"trace_id", traceID,
		"url", sourceURL,
		"error", err,
	)
}

func (o *SlogObserver) Resolved(traceID string, result *MetadataResult) {
	videoURL := "NOT FOUND"
	if result.VideoURL != nil {
		videoURL = "FOUND"
	}
	o.logger.Info("[RESOLVER] metadata extracted",
		"trace_id", traceID,
		"platform", result.Platform,
		"title", truncateGraphemes(result.Title, logTitleGraphemes),
		"video_url", videoURL,
	)
}

// truncateGraphemes keeps at most n user-perceived characters of s.
func truncateGraphemes(s string, n int) string {
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString("...")
	return b.String()
}
