// Package aiparse turns free-text model output into typed values. Every
// failure is reported as a *ParseError wrapping ErrUnparseable so callers can
// log the raw response and decide how to degrade.
package aiparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparseable marks model output that could not be turned into the
// requested value.
var ErrUnparseable = errors.New("unparseable model response")

var (
	numberPattern = regexp.MustCompile(`\d+\.?\d*`)
	fencePattern  = regexp.MustCompile("```json\\n?|\\n?```")
)

// ParseError carries the raw text that failed to parse.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return ErrUnparseable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrUnparseable, e.Err)
}

// Unwrap lets errors.Is match both ErrUnparseable and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnparseable}
	}
	return []error{ErrUnparseable, e.Err}
}

func fail(raw string, err error) error {
	return &ParseError{Raw: raw, Err: err}
}

// FirstNumber extracts the first unsigned decimal number in text.
func FirstNumber(text string) (float64, error) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, fail(text, errors.New("no number found"))
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(match, "."), 64)
	if err != nil {
		return 0, fail(text, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fail(text, errors.New("number is not finite"))
	}
	return v, nil
}

// NumberInRange extracts the first number and requires min <= v <= max.
func NumberInRange(text string, min, max float64) (float64, error) {
	v, err := FirstNumber(text)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fail(text, fmt.Errorf("value %g outside [%g, %g]", v, min, max))
	}
	return v, nil
}

// StripCodeFence removes markdown ```json fences around a document.
func StripCodeFence(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

// DecodeJSON strips code fences and decodes the remaining document into v.
func DecodeJSON(text string, v interface{}) error {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return fail(text, errors.New("empty response"))
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fail(text, err)
	}
	return nil
}

// Sentence trims model output down to a single line of text.
func Sentence(text string) (string, error) {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, "\"")
	if s == "" {
		return "", fail(text, errors.New("empty response"))
	}
	return s, nil
}

// Raw returns the unparsed text carried by err, if any.
func Raw(err error) (string, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Raw, true
	}
	return "", false
}
