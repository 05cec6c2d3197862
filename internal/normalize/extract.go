package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"course-compass/internal/domain"
)

type jsonShape int

const (
	shapeArray jsonShape = iota
	shapeObject
)

func (s jsonShape) String() string {
	if s == shapeArray {
		return "array"
	}
	return "object"
}

func (s jsonShape) delimiters() (byte, byte) {
	if s == shapeArray {
		return '[', ']'
	}
	return '{', '}'
}

// maxScanStarts bounds the balanced-bracket scan to the first few openings.
const maxScanStarts = 16

var (
	lazyArrayRe    = regexp.MustCompile(`(?s)\[.*?\]`)
	greedyArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
	lazyObjectRe   = regexp.MustCompile(`(?s)\{.*?\}`)
	greedyObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

	errNoCandidate = errors.New("no bracketed JSON candidate found")
)

// ExtractArray recovers the top-level JSON array embedded in sanitized text.
// Bracketed candidates found in surrounding prose are only accepted when
// every element is an object, so a stray "[3]" never stands in for the list.
func ExtractArray(text string) ([]any, error) {
	v, err := extract(text, shapeArray, objectElements)
	if err != nil {
		return nil, err
	}
	return v.([]any), nil
}

// ExtractObject recovers the top-level JSON object embedded in sanitized text.
func ExtractObject(text string) (map[string]any, error) {
	v, err := extract(text, shapeObject, nil)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func extract(text string, want jsonShape, accept func(any) error) (any, error) {
	v, strictErr := parseStrict(text, want)
	if strictErr == nil {
		return v, nil
	}
	v, fallbackErr := parseFallback(text, want, accept)
	if fallbackErr == nil {
		return v, nil
	}
	return nil, &domain.MalformedAIResponseError{
		Text:  text,
		Cause: fmt.Errorf("strict parse: %v; bracket fallback: %w", strictErr, fallbackErr),
	}
}

// parseStrict parses the whole text as a single JSON value of the wanted shape.
func parseStrict(text string, want jsonShape) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	if !hasShape(v, want) {
		return nil, fmt.Errorf("expected a JSON %s, got %T", want, v)
	}
	return v, nil
}

// parseFallback tries bracketed substrings in order: the shortest match from
// the first opening bracket, the span from the first opening to the last
// closing bracket, then balanced spans starting at each opening bracket.
// The first candidate that parses and passes accept wins; a nil accept
// takes any value of the wanted shape.
func parseFallback(text string, want jsonShape, accept func(any) error) (any, error) {
	lazy, greedy := lazyArrayRe, greedyArrayRe
	if want == shapeObject {
		lazy, greedy = lazyObjectRe, greedyObjectRe
	}

	var lastErr error = errNoCandidate
	tried := make(map[string]bool)
	try := func(candidate string) (any, bool) {
		if candidate == "" || tried[candidate] {
			return nil, false
		}
		tried[candidate] = true
		v, err := parseStrict(candidate, want)
		if err == nil && accept != nil {
			err = accept(v)
		}
		if err != nil {
			lastErr = err
			return nil, false
		}
		return v, true
	}

	if v, ok := try(lazy.FindString(text)); ok {
		return v, nil
	}
	if v, ok := try(greedy.FindString(text)); ok {
		return v, nil
	}

	open, close := want.delimiters()
	starts := 0
	for i := 0; i < len(text) && starts < maxScanStarts; i++ {
		if text[i] != open {
			continue
		}
		starts++
		end, ok := balancedEnd(text, i, open, close)
		if !ok {
			continue
		}
		if v, ok := try(text[i : end+1]); ok {
			return v, nil
		}
	}
	return nil, lastErr
}

// balancedEnd returns the index of the bracket closing the one at start,
// ignoring brackets inside JSON string literals.
func balancedEnd(s string, start int, open, close byte) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// objectElements rejects arrays holding anything other than JSON objects.
func objectElements(v any) error {
	for i, item := range v.([]any) {
		if _, ok := item.(map[string]any); !ok {
			return fmt.Errorf("element %d is %T, not an object", i, item)
		}
	}
	return nil
}

func hasShape(v any, want jsonShape) bool {
	switch v.(type) {
	case []any:
		return want == shapeArray
	case map[string]any:
		return want == shapeObject
	}
	return false
}
