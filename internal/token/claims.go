package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Decoder reads JWT claims without verifying the signature. The gateway
// only needs the expiry; the backend verifies signatures on every call.
//
// jwt.Parser.ParseUnverified is deliberately not used here: it requires
// exactly three segments, while stored tokens are only guaranteed a
// header and a payload.
type Decoder struct {
	logger *zap.Logger
}

// NewDecoder builds a claims decoder.
func NewDecoder(logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{logger: logger}
}

// Decode parses the payload segment of a compact token into claims.
// Any failure is logged as a diagnostic and yields nil, never an error:
// a token that cannot be decoded is simply not a credential.
func (d *Decoder) Decode(tok string) jwt.MapClaims {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		d.logger.Debug("malformed token", zap.Int("segments", len(parts)))
		return nil
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		d.logger.Debug("invalid token payload encoding", zap.Error(err))
		return nil
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		d.logger.Debug("invalid token payload json", zap.Error(err))
		return nil
	}
	return claims
}

// Live reports whether the claims carry an exp strictly in the future.
// Missing or unparsable exp means dead.
func Live(claims jwt.MapClaims, now time.Time) bool {
	if claims == nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.After(now)
}

// decodeSegment accepts both the URL-safe and standard base64 alphabets,
// with or without padding.
func decodeSegment(seg string) ([]byte, error) {
	seg = strings.NewReplacer("-", "+", "_", "/").Replace(seg)
	seg = strings.TrimRight(seg, "=")
	return base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(seg)
}
