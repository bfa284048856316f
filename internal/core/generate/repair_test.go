package generate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid as-is", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "\n  {\"a\":1}\n", `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", `Sure! Here is your JSON: {"a":{"b":2}} Enjoy.`, `{"a":{"b":2}}`},
		{"trailing comma in object", `{"a":1,"b":2,}`, `{"a":1,"b":2}`},
		{"trailing comma in array", "{\"tips\":[\"x\",\"y\",\n]}", `{"tips":["x","y"]}`},
		{"fenced with trailing commas", "```\n{\"a\":[1,2,],}\n```", `{"a":[1,2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepairJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestRepairJSON_Unrecoverable(t *testing.T) {
	for _, in := range []string{
		"",
		"no json here",
		"} backwards {",
		`{"a": "unterminated}`,
	} {
		_, err := RepairJSON(in)
		assert.ErrorIs(t, err, ErrInvalidModelOutput, "input %q", in)
	}
}

func TestOutputSchema_Decode(t *testing.T) {
	schema, err := loadOutputSchema("caption.json")
	require.NoError(t, err)

	reply := "```json\n" + `{
  "youtube": {"title": "🔥 Wow", "description": "Story", "tags": ["cats", "funny"],},
  "instagram": {"description": "HOOK"},
  "facebook": {"description": "Friends"}
}` + "\n```"

	var result CaptionResult
	require.NoError(t, schema.decode(reply, &result))

	assert.Equal(t, "🔥 Wow", result.YouTube.Title)
	assert.Equal(t, Tags("cats, funny"), result.YouTube.Tags)
	assert.Equal(t, "HOOK", result.Instagram.Description)
	assert.Equal(t, "Friends", result.Facebook.Description)
}

func TestOutputSchema_RejectsWrongShape(t *testing.T) {
	schema, err := loadOutputSchema("caption.json")
	require.NoError(t, err)

	var result CaptionResult
	err = schema.decode(`{"youtube":{"title":"x"}}`, &result)
	require.ErrorIs(t, err, ErrInvalidModelOutput)
	assert.Contains(t, err.Error(), "instagram")
}

func TestOutputSchema_PromptTipsOptional(t *testing.T) {
	schema, err := loadOutputSchema("prompt.json")
	require.NoError(t, err)

	var result PromptResult
	require.NoError(t, schema.decode(`{"finalPrompt":"A cat.","breakdown":{"subjectDetails":"s","environment":"e","cinematography":"c","styleNotes":"n"}}`, &result))
	assert.Equal(t, "A cat.", result.FinalPrompt)
	assert.Nil(t, result.Tips)
}

func TestTags_UnmarshalJSON(t *testing.T) {
	var tags Tags
	require.NoError(t, json.Unmarshal([]byte(`"a, b"`), &tags))
	assert.Equal(t, Tags("a, b"), tags)

	require.NoError(t, json.Unmarshal([]byte(`["a","b","c"]`), &tags))
	assert.Equal(t, Tags("a, b, c"), tags)

	assert.Error(t, json.Unmarshal([]byte(`42`), &tags))
}
