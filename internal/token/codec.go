// Package token resolves persisted credential blobs into usable bearer
// tokens and decodes their claims. Stored values arrive in three shapes
// that accumulated over the storefront's history: a bare token string, a
// JSON-quoted string, or a JSON object carrying a token or access_token
// field. Everything downstream consumes only the resolved token string;
// the empty string means "no token".
package token

import (
	"encoding/json"
	"strings"
)

const bearerPrefix = "Bearer"

// Sanitize trims whitespace and strips one leading case-insensitive
// "Bearer " prefix. Empty input yields the empty string.
func Sanitize(raw string) string {
	tok := strings.TrimSpace(raw)
	if len(tok) > len(bearerPrefix) &&
		strings.EqualFold(tok[:len(bearerPrefix)], bearerPrefix) &&
		(tok[len(bearerPrefix)] == ' ' || tok[len(bearerPrefix)] == '\t') {
		tok = strings.TrimSpace(tok[len(bearerPrefix):])
	}
	return tok
}

// Extract resolves a raw stored blob into a sanitized token. A blob that
// is not valid JSON is treated as the bare token itself; a JSON string
// is unwrapped; a JSON object contributes its token field, or failing
// that its access_token field. Any other JSON value, or an object
// without either field, yields no token. Extract never fails loudly:
// parse problems degrade to the bare-string path or to the empty string.
func Extract(rawBlob string) string {
	var parsed any
	if err := json.Unmarshal([]byte(rawBlob), &parsed); err != nil {
		return Sanitize(rawBlob)
	}

	switch v := parsed.(type) {
	case string:
		return Sanitize(v)
	case map[string]any:
		if field, ok := v["token"]; ok {
			s, _ := field.(string)
			return Sanitize(s)
		}
		if field, ok := v["access_token"]; ok {
			s, _ := field.(string)
			return Sanitize(s)
		}
	}
	return ""
}
