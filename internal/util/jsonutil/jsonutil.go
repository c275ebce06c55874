// Package jsonutil parses JSON that arrives embedded in free-form model
// output: possibly fenced, prefixed with prose, or carrying double-escaped
// unicode sequences.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UnmarshalFlex tries to unmarshal JSON bytes into v with best effort:
// direct unmarshal first, then a normalization pass that repairs
// double-escaped unicode sequences.
func UnmarshalFlex(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	norm, err := normalizeUnicode(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(norm, v)
}

// normalizeUnicode re-encodes JSON bytes after unwrapping payloads that
// arrive as a quoted JSON document and unescaping double-escaped unicode
// sequences (e.g. "\\u003e") inside string values.
func normalizeUnicode(raw []byte) ([]byte, error) {
	var anyVal any
	if err := json.Unmarshal(raw, &anyVal); err != nil {
		return nil, err
	}
	if s, ok := anyVal.(string); ok && json.Valid([]byte(s)) {
		return normalizeUnicode([]byte(s))
	}
	return marshalNoEscape(deepUnescape(anyVal))
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func unescapeUnicodeString(s string) (string, error) {
	esc := strings.ReplaceAll(s, `\`, `\\`)
	esc = strings.ReplaceAll(esc, `"`, `\"`)
	var out string
	if err := json.Unmarshal([]byte(`"`+esc+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}

func deepUnescape(v any) any {
	switch x := v.(type) {
	case string:
		if s, err := unescapeUnicodeString(x); err == nil {
			return s
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepUnescape(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = deepUnescape(vv)
		}
		return out
	default:
		return v
	}
}
