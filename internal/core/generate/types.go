package generate

import (
	"encoding/json"
	"strings"
)

// Task selects which model a provider uses for a request.
type Task string

const (
	TaskCaption Task = "caption"
	TaskPrompt  Task = "prompt"
)

// CaptionRequest describes the video to write social captions for.
type CaptionRequest struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Mood     string `json:"mood"`
	Language string `json:"language"`
}

// Caption request defaults.
const (
	DefaultInputType = "text"
	DefaultMood      = "Engaging"
	DefaultLanguage  = "English"
)

func (r CaptionRequest) withDefaults() CaptionRequest {
	r.Type = valueOr(r.Type, DefaultInputType)
	r.Mood = valueOr(r.Mood, DefaultMood)
	r.Language = valueOr(r.Language, DefaultLanguage)
	return r
}

// CaptionResult holds per-network captions.
type CaptionResult struct {
	YouTube struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Tags        Tags   `json:"tags"`
	} `json:"youtube"`
	Instagram struct {
		Description string `json:"description"`
	} `json:"instagram"`
	Facebook struct {
		Description string `json:"description"`
	} `json:"facebook"`
}

// Tags is a comma-separated keyword list. Models sometimes answer with a JSON
// array instead of a string; both decode to the same value.
type Tags string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Tags(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = Tags(strings.Join(list, ", "))
	return nil
}

// PromptRequest is a rough video concept to be expanded into a detailed
// text-to-video prompt.
type PromptRequest struct {
	Subject          string `json:"subject"`
	Action           string `json:"action"`
	CharacterDetails string `json:"characterDetails"`
	CameraShot       string `json:"cameraShot"`
	CameraMovement   string `json:"cameraMovement"`
	Lighting         string `json:"lighting"`
	ColorPalette     string `json:"colorPalette"`
	Style            string `json:"style"`
	AspectRatio      string `json:"aspectRatio"`
	MotionSpeed      string `json:"motionSpeed"`
}

// Scene defaults applied to unspecified prompt fields.
const (
	Unspecified           = "User didn't specify"
	DefaultCameraShot     = "Cinematic"
	DefaultCameraMovement = "Dynamic"
	DefaultLighting       = "Natural"
	DefaultColorPalette   = "Vibrant"
	DefaultStyle          = "Realistic"
	DefaultAspectRatio    = "16:9"
	DefaultMotionSpeed    = "Standard"
)

// withDefaults fills unspecified fields. CharacterDetails stays empty so the
// template can tell a supplied character from a generated one.
func (r PromptRequest) withDefaults() PromptRequest {
	r.Subject = valueOr(r.Subject, Unspecified)
	r.Action = valueOr(r.Action, Unspecified)
	r.CharacterDetails = strings.TrimSpace(r.CharacterDetails)
	r.CameraShot = valueOr(r.CameraShot, DefaultCameraShot)
	r.CameraMovement = valueOr(r.CameraMovement, DefaultCameraMovement)
	r.Lighting = valueOr(r.Lighting, DefaultLighting)
	r.ColorPalette = valueOr(r.ColorPalette, DefaultColorPalette)
	r.Style = valueOr(r.Style, DefaultStyle)
	r.AspectRatio = valueOr(r.AspectRatio, DefaultAspectRatio)
	r.MotionSpeed = valueOr(r.MotionSpeed, DefaultMotionSpeed)
	return r
}

// PromptResult is the expanded prompt with a per-aspect breakdown.
type PromptResult struct {
	FinalPrompt string `json:"finalPrompt"`
	Breakdown   struct {
		SubjectDetails string `json:"subjectDetails"`
		Environment    string `json:"environment"`
		Cinematography string `json:"cinematography"`
		StyleNotes     string `json:"styleNotes"`
	} `json:"breakdown"`
	Tips []string `json:"tips"`
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
