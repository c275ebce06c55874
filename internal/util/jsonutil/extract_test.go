package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose prefix", `Sure, here is the analysis: {"a":1} hope it helps`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"nested", `{"a":{"b":[1,2]}}`, `{"a":{"b":[1,2]}}`, true},
		{"braces in strings", `{"msg":"use {braces} carefully"}`, `{"msg":"use {braces} carefully"}`, true},
		{"escaped quote", `{"msg":"say \"hi\" {"}`, `{"msg":"say \"hi\" {"}`, true},
		{"invalid then valid", `{not json} but {"a":1} is`, `{"a":1}`, true},
		{"no object", "nothing structured here", "", false},
		{"unbalanced", `{"a":1`, "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, ok := ExtractObject(tc.text)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, string(raw))
			}
		})
	}
}

func TestUnmarshalFlex(t *testing.T) {
	var v struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, UnmarshalFlex([]byte(`{"msg":"a > b"}`), &v))
	assert.Equal(t, "a > b", v.Msg)

	// A model that re-encoded its whole answer as a JSON string.
	require.NoError(t, UnmarshalFlex([]byte(`"{\"msg\":\"hi\"}"`), &v))
	assert.Equal(t, "hi", v.Msg)
}
