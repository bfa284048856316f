package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompts_Caption(t *testing.T) {
	prompts, err := NewPrompts()
	require.NoError(t, err)

	got, err := prompts.Caption(CaptionRequest{Type: "url", Value: "a cat surfing", Mood: "Funny", Language: "Spanish"}.withDefaults())
	require.NoError(t, err)

	assert.Contains(t, got, "Input Type: url")
	assert.Contains(t, got, "Content: a cat surfing")
	assert.Contains(t, got, "Mood: Funny")
	assert.Contains(t, got, "Write EVERYTHING in Spanish.")
}

func TestPrompts_CaptionDefaults(t *testing.T) {
	prompts, err := NewPrompts()
	require.NoError(t, err)

	got, err := prompts.Caption(CaptionRequest{Value: "x"}.withDefaults())
	require.NoError(t, err)

	assert.Contains(t, got, "Input Type: "+DefaultInputType)
	assert.Contains(t, got, "Mood: "+DefaultMood)
	assert.Contains(t, got, "Language: "+DefaultLanguage)
}

func TestPrompts_SceneDefaults(t *testing.T) {
	prompts, err := NewPrompts()
	require.NoError(t, err)

	got, err := prompts.Scene(PromptRequest{}.withDefaults())
	require.NoError(t, err)

	assert.Contains(t, got, "- Subject: User didn't specify")
	assert.Contains(t, got, "- Action: User didn't specify")
	assert.Contains(t, got, "- Camera Shot: Cinematic")
	assert.Contains(t, got, "- Camera Movement: Dynamic")
	assert.Contains(t, got, "- Lighting: Natural")
	assert.Contains(t, got, "- Color Palette: Vibrant")
	assert.Contains(t, got, "- Style: Realistic")
	assert.Contains(t, got, "- Aspect Ratio: 16:9")
	assert.Contains(t, got, "- Motion Speed: Standard")
	assert.Contains(t, got, "None (generate a new detailed character)")
	assert.NotContains(t, got, "the user supplied a character")
}

func TestPrompts_SceneWithCharacter(t *testing.T) {
	prompts, err := NewPrompts()
	require.NoError(t, err)

	got, err := prompts.Scene(PromptRequest{
		Subject:          "an old fisherman",
		CharacterDetails: "  grey beard, yellow raincoat ",
		AspectRatio:      "9:16",
	}.withDefaults())
	require.NoError(t, err)

	assert.Contains(t, got, "- Subject: an old fisherman")
	assert.Contains(t, got, "- Custom Character Reference: grey beard, yellow raincoat")
	assert.Contains(t, got, "Use this description (grey beard, yellow raincoat)")
	assert.Contains(t, got, "- Aspect Ratio: 9:16")
}
