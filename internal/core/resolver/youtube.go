package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrCipheredFormatsOnly means the player response listed formats, but every one
// of them needs signature deciphering, which is not implemented.
var ErrCipheredFormatsOnly = errors.New("only signature-ciphered formats available")

var playerResponseAssign = regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*\{`)

// youtubeFormat is one entry of streamingData.formats / adaptiveFormats
type youtubeFormat struct {
	URL             string `json:"url"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	MimeType        string `json:"mimeType"`
	SignatureCipher string `json:"signatureCipher"`
	Cipher          string `json:"cipher"`
}

type youtubePlayerResponse struct {
	StreamingData *struct {
		Formats         []youtubeFormat `json:"formats"`
		AdaptiveFormats []youtubeFormat `json:"adaptiveFormats"`
	} `json:"streamingData"`
}

// extractYouTube decodes the embedded player response and picks the widest
// format exposing a direct URL. Progressive formats are listed before adaptive
// ones, and the first of equally wide formats is kept.
func extractYouTube(page string) (string, error) {
	loc := playerResponseAssign.FindStringIndex(page)
	if loc == nil {
		return "", nil
	}

	// The decoder stops after one JSON value, so trailing script is ignored.
	var player youtubePlayerResponse
	dec := json.NewDecoder(strings.NewReader(page[loc[1]-1:]))
	if err := dec.Decode(&player); err != nil {
		return "", fmt.Errorf("%w: player response: %v", ErrUpstreamParse, err)
	}
	if player.StreamingData == nil {
		return "", nil
	}

	formats := make([]youtubeFormat, 0, len(player.StreamingData.Formats)+len(player.StreamingData.AdaptiveFormats))
	formats = append(formats, player.StreamingData.Formats...)
	formats = append(formats, player.StreamingData.AdaptiveFormats...)

	best, ciphered := selectWidestFormat(formats)
	if best != nil {
		return best.URL, nil
	}
	if ciphered > 0 {
		return "", fmt.Errorf("%w: %d skipped", ErrCipheredFormatsOnly, ciphered)
	}
	return "", nil
}

// selectWidestFormat returns the widest format with a direct URL, plus the number
// of formats skipped because they only carry a signature cipher.
func selectWidestFormat(formats []youtubeFormat) (*youtubeFormat, int) {
	var best *youtubeFormat
	ciphered := 0
	for i := range formats {
		f := &formats[i]
		if f.URL == "" {
			if f.SignatureCipher != "" || f.Cipher != "" {
				ciphered++
			}
			continue
		}
		if best == nil || f.Width > best.Width {
			best = f
		}
	}
	return best, ciphered
}
