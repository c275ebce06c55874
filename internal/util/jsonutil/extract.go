package jsonutil

import (
	"encoding/json"
	"strings"
)

// ExtractObject locates the first balanced JSON object embedded in
// free-form text and reports whether one was found. The bool result is the
// contract: callers must branch on it, extraction never panics and never
// returns a partial object.
func ExtractObject(text string) (json.RawMessage, bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end, ok := balancedEnd(text, start); ok {
			candidate := []byte(text[start : end+1])
			if json.Valid(candidate) {
				return json.RawMessage(candidate), true
			}
			// Balanced but invalid (e.g. braces inside prose); try the
			// next opening brace.
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return nil, false
}

// balancedEnd walks from the opening brace at start, tracking string and
// escape state, and returns the index of the matching closing brace.
func balancedEnd(text string, start int) (int, bool) {
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
