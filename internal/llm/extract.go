package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type Shape int

const (
	ShapeArray Shape = iota
	ShapeObject
)

func (s Shape) String() string {
	if s == ShapeArray {
		return "array"
	}
	return "object"
}

func (s Shape) delimiters() (byte, byte) {
	if s == ShapeArray {
		return '[', ']'
	}
	return '{', '}'
}

var (
	jsonFence = regexp.MustCompile("```json\\s*")
	anyFence  = regexp.MustCompile("```\\s*")
)

// Span strips code fences and returns the text from the first opening
// delimiter of shape to the last closing one.
func Span(raw string, shape Shape) (string, error) {
	text := jsonFence.ReplaceAllString(raw, "")
	text = anyFence.ReplaceAllString(text, "")

	open, closing := shape.delimiters()
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON %s found", ErrGeneration, shape)
	}
	return text[start : end+1], nil
}

// Extract recovers the JSON value of the given shape from raw model text and
// decodes it into out. No partial recovery is attempted.
func Extract(raw string, shape Shape, out any) error {
	span, err := Span(raw, shape)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return fmt.Errorf("%w: parse JSON %s: %v", ErrGeneration, shape, err)
	}
	return nil
}
