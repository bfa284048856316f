package resolver

// Fallback texts used when extraction cannot supply a value.
const (
	FallbackTitleYouTube = "YouTube Video"
	FallbackTitle        = "AI Video"

	DescriptionFound   = "Direct download link extracted successfully!"
	DescriptionBlocked = "Platform is protecting this stream. Direct download restricted."

	DegradedTitle       = "Public Video"
	DegradedDescription = "Platform blocked direct extraction. Please try an external downloader."
)

// MetadataResult is the envelope returned for every accepted resolution request.
// Title and Description are never empty. VideoURL, when set, is absolute.
type MetadataResult struct {
	Title           string    `json:"title"`
	Thumbnail       *string   `json:"thumbnail"`
	Description     string    `json:"description"`
	VideoURL        *string   `json:"videoUrl"`
	Platform        Platform  `json:"platform"`
	PageDescription string    `json:"pageDescription,omitempty"`
	Attempts        []Attempt `json:"-"`
	Degraded        bool      `json:"-"`
}

// Outcome is the result class of one extraction attempt.
type Outcome int

const (
	OutcomeMiss  Outcome = iota // strategy ran and found nothing
	OutcomeHit                  // strategy produced a value
	OutcomeError                // strategy could not run to completion
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeError:
		return "error"
	default:
		return "miss"
	}
}

// Attempt records what a single strategy produced.
type Attempt struct {
	Strategy string
	Outcome  Outcome
	Value    string
	Err      error
}

func hit(strategy, value string) Attempt {
	return Attempt{Strategy: strategy, Outcome: OutcomeHit, Value: value}
}

func miss(strategy string) Attempt {
	return Attempt{Strategy: strategy, Outcome: OutcomeMiss}
}

func failed(strategy string, err error) Attempt {
	return Attempt{Strategy: strategy, Outcome: OutcomeError, Err: err}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
