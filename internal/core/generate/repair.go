package generate

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// RepairJSON recovers a JSON object from a model reply. It tries, in order:
// the reply as-is, the outermost {...} span (drops prose and code fences), and
// that span with trailing commas removed.
func RepairJSON(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if json.Valid([]byte(text)) {
		return []byte(text), nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrInvalidModelOutput)
	}

	span := text[start : end+1]
	if json.Valid([]byte(span)) {
		return []byte(span), nil
	}

	cleaned := trailingCommaObject.ReplaceAllString(span, "}")
	cleaned = trailingCommaArray.ReplaceAllString(cleaned, "]")
	if json.Valid([]byte(cleaned)) {
		return []byte(cleaned), nil
	}

	return nil, fmt.Errorf("%w: could not repair reply", ErrInvalidModelOutput)
}

// outputSchema validates repaired model replies against an embedded JSON schema.
type outputSchema struct {
	name   string
	loader gojsonschema.JSONLoader
}

func loadOutputSchema(name string) (*outputSchema, error) {
	raw, err := schemasFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", name, err)
	}
	return &outputSchema{name: name, loader: gojsonschema.NewBytesLoader(raw)}, nil
}

// decode repairs text, validates it and unmarshals it into out.
func (s *outputSchema) decode(text string, out any) error {
	doc, err := RepairJSON(text)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(s.loader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidModelOutput, strings.Join(errorMessages, "; "))
	}

	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}
	return nil
}
