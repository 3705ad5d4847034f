package token

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bearer prefix", raw: "Bearer abc", want: "abc"},
		{name: "lowercase bearer prefix", raw: "bearer abc", want: "abc"},
		{name: "surrounding whitespace", raw: "  abc  ", want: "abc"},
		{name: "bearer with extra spaces", raw: "Bearer   abc", want: "abc"},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
		{name: "bearer glued to token stays", raw: "Bearerabc", want: "Bearerabc"},
		{name: "bare bearer word stays", raw: "Bearer", want: "Bearer"},
		{name: "plain token untouched", raw: "abc.def.ghi", want: "abc.def.ghi"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, Sanitize(testCase.raw))
		})
	}
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		name string
		blob string
		want string
	}{
		{name: "bare token", blob: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "json string", blob: `"abc.def.ghi"`, want: "abc.def.ghi"},
		{name: "json string with bearer", blob: `"Bearer abc"`, want: "abc"},
		{name: "object with token field", blob: `{"token":"abc"}`, want: "abc"},
		{name: "object with access_token field", blob: `{"access_token":"abc"}`, want: "abc"},
		{name: "token field wins over access_token", blob: `{"token":"one","access_token":"two"}`, want: "one"},
		{name: "object without either field", blob: `{"refresh":"abc"}`, want: ""},
		{name: "token field of wrong type", blob: `{"token":123}`, want: ""},
		{name: "json number", blob: `42`, want: ""},
		{name: "json null", blob: `null`, want: ""},
		{name: "json array", blob: `["abc"]`, want: ""},
		{name: "not json falls back to bare path", blob: "not.json.val", want: "not.json.val"},
		{name: "bare token with bearer prefix", blob: "Bearer abc", want: "abc"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, Extract(testCase.blob))
		})
	}
}

func TestExtractIdempotentUnderRewrapping(t *testing.T) {
	bare := "header.payload.signature"

	quoted, err := json.Marshal(bare)
	require.NoError(t, err)
	wrapped, err := json.Marshal(map[string]string{"token": bare})
	require.NoError(t, err)

	want := Extract(bare)
	assert.Equal(t, want, Extract(string(quoted)))
	assert.Equal(t, want, Extract(string(wrapped)))
}
