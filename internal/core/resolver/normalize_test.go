package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	const page = "https://site.com/page"

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "protocol-relative URL",
			input:    "//cdn.example.com/v.mp4",
			expected: "https://cdn.example.com/v.mp4",
		},
		{
			name:     "site-relative URL",
			input:    "/v/123.mp4",
			expected: "https://site.com/v/123.mp4",
		},
		{
			name:     "https URL unchanged",
			input:    "https://example.com/video.mp4",
			expected: "https://example.com/video.mp4",
		},
		{
			name:     "http URL unchanged",
			input:    "http://example.com/video.mp4",
			expected: "http://example.com/video.mp4",
		},
		{
			name:     "entity-encoded query",
			input:    "https://cdn.example.com/v.mp4?a=1&amp;b=2",
			expected: "https://cdn.example.com/v.mp4?a=1&b=2",
		},
		{
			name:     "entity-encoded protocol-relative",
			input:    "//cdn.example.com/v.mp4?Expires=1&amp;Signature=x",
			expected: "https://cdn.example.com/v.mp4?Expires=1&Signature=x",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input, page))
		})
	}
}

func TestNormalize_KeepsPagePort(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/v.mp4", Normalize("/v.mp4", "http://localhost:8080/watch?id=1"))
}

func TestNormalize_Idempotent(t *testing.T) {
	const page = "https://site.com/page"
	inputs := []string{
		"https://cdn.example.com/v.mp4",
		"https://cdn.example.com/v.mp4?a=1&b=2",
		"//cdn.example.com/v.mp4",
		"/v/123.mp4",
		"http://example.com/a%20b.mp4",
	}

	for _, in := range inputs {
		once := Normalize(in, page)
		assert.Equal(t, once, Normalize(once, page), "input: %s", in)
	}
}

func TestAbsoluteVideoURL(t *testing.T) {
	const page = "https://site.com/videos/page.html"

	got, ok := absoluteVideoURL("clip.mp4", page)
	assert.True(t, ok)
	assert.Equal(t, "https://site.com/videos/clip.mp4", got)

	got, ok = absoluteVideoURL("//cdn.site.com/a.mp4", page)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.site.com/a.mp4", got)

	_, ok = absoluteVideoURL("javascript:alert(1)", page)
	assert.False(t, ok)
}
