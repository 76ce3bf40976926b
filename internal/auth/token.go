package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/shared"
)

const mockSignature = "mock-signature"

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Claims is the token payload.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	// Exp is the expiry in Unix seconds. A nil Exp means the payload had none.
	Exp *float64 `json:"exp,omitempty"`
}

// ExpiresAt converts Exp to a time. The zero time is returned when Exp is missing.
func (c Claims) ExpiresAt() time.Time {
	if c.Exp == nil {
		return time.Time{}
	}
	return time.Unix(int64(*c.Exp), 0)
}

// TokenCodec encodes and validates mock bearer tokens.
type TokenCodec struct {
	now func() time.Time
}

// NewTokenCodec creates a codec. A nil clock defaults to [time.Now].
func NewTokenCodec(now func() time.Time) *TokenCodec {
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{now: now}
}

// Issue builds a token for claims that expires ttl from now. Any Exp already set on claims is replaced.
func (c *TokenCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	h, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", fmt.Errorf("failed to encode token header: %w", err)
	}

	exp := float64(c.now().Unix() + int64(ttl/time.Second))
	claims.Exp = &exp
	p, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode token payload: %w", err)
	}

	enc := base64.StdEncoding
	return strings.Join([]string{
		enc.EncodeToString(h),
		enc.EncodeToString(p),
		enc.EncodeToString([]byte(mockSignature)),
	}, "."), nil
}

// Decode parses the payload of token without checking expiry.
func (c *TokenCodec) Decode(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", shared.ErrMalformedToken, len(parts))
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedToken, err)
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not JSON: %v", shared.ErrMalformedToken, err)
	}
	return &claims, nil
}

// Check returns nil when token is well formed and unexpired.
func (c *TokenCodec) Check(token string) error {
	claims, err := c.Decode(token)
	if err != nil {
		return err
	}
	if claims.Exp == nil {
		return fmt.Errorf("%w: missing exp", shared.ErrMalformedToken)
	}
	if *claims.Exp <= float64(c.now().Unix()) {
		return shared.ErrTokenExpired
	}
	return nil
}

// Validate reports whether token is well formed and its exp is strictly after now.
func (c *TokenCodec) Validate(token string) bool {
	return c.Check(token) == nil
}

// decodeSegment accepts both padded and unpadded standard base64.
func decodeSegment(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
