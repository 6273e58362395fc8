// Package decode turns free-form model output into typed values.
//
// Models wrap JSON in markdown fences, prepend prose, or stream a prose
// article followed by a delimiter and a JSON trailer. Extract and Splitter
// recover the JSON; Decode and DecodeWith parse and check it.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// InvalidResponseMessage is shown to users when a response cannot be
// decoded after all retries.
const InvalidResponseMessage = "The AI returned an invalid response. Please try again."

// DecodeError reports model output that could not be turned into the
// requested shape. Raw is the original text, kept for diagnostics.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode AI response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage is the text to surface to a learner.
func (e *DecodeError) UserMessage() string { return InvalidResponseMessage }

// ErrEmpty is wrapped by DecodeError when the model returned nothing.
var ErrEmpty = errors.New("empty response")

var fencePattern = regexp.MustCompile("```(?:json)?\\n([\\s\\S]*?)\\n```")

// Extract returns the most plausible JSON payload in raw.
//
// A fenced code block wins. Otherwise the text from the first '{' to the
// last '}' is used when that brace comes before any '['; failing that, the
// first '[' to the last ']'. This is a slice between outermost delimiters,
// not a balanced scan: prose after the payload that contains a closing
// brace will be swallowed. If nothing matches the trimmed text is returned
// unchanged.
func Extract(raw string) string {
	text := strings.TrimSpace(raw)

	if m := fencePattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}

	firstBrace := strings.Index(text, "{")
	lastBrace := strings.LastIndex(text, "}")
	firstBracket := strings.Index(text, "[")
	lastBracket := strings.LastIndex(text, "]")

	if firstBrace != -1 && lastBrace > firstBrace && (firstBracket == -1 || firstBrace < firstBracket) {
		return text[firstBrace : lastBrace+1]
	}
	if firstBracket != -1 && lastBracket > firstBracket {
		return text[firstBracket : lastBracket+1]
	}
	return text
}

type validator interface {
	Validate() error
}

// Decode extracts JSON from raw and unmarshals it into a T. If *T has a
// Validate method it must pass as well.
func Decode[T any](raw string) (T, error) {
	var out T
	payload := Extract(raw)
	if payload == "" {
		return out, &DecodeError{Raw: raw, Err: ErrEmpty}
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		var zero T
		return zero, &DecodeError{Raw: raw, Err: err}
	}
	if v, ok := any(&out).(validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, &DecodeError{Raw: raw, Err: err}
		}
	}
	return out, nil
}

// DecodeWith is Decode preceded by a JSON Schema check, so responses that
// omit required fields are rejected rather than zero-filled.
func DecodeWith[T any](raw string, name string, schema map[string]any) (T, error) {
	var zero T
	payload := Extract(raw)
	if payload == "" {
		return zero, &DecodeError{Raw: raw, Err: ErrEmpty}
	}
	if err := Validate(name, schema, []byte(payload)); err != nil {
		return zero, &DecodeError{Raw: raw, Err: err}
	}
	return Decode[T](payload)
}
