// Package tokenx reads the claims embedded in an API token without
// verifying it. Only the API can check the signature; what this package
// returns is a convenience for pre-populating the UI and must never be used
// to authorize anything.
package tokenx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/bizcards/internal/client/models"
)

// ErrMalformedToken wraps every decode failure.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the payload segment of an API token. Fields are read
// tolerantly from Raw: a claim of an unexpected type is left zero.
type Claims struct {
	UserID     string
	Email      string
	IsBusiness bool
	IsAdmin    bool
	Name       *models.Name
	IssuedAt   *jwt.NumericDate
	ExpiresAt  *jwt.NumericDate

	// Raw is the complete claims object, including fields not mapped above.
	Raw map[string]any
}

// Identity converts the claims into a partial identity. ok is false when
// the claims carry no identifier.
func (c *Claims) Identity() (id models.Identity, ok bool) {
	if c == nil || strings.TrimSpace(c.UserID) == "" {
		return models.Identity{}, false
	}
	id = models.Identity{
		ID:         c.UserID,
		Email:      c.Email,
		IsBusiness: c.IsBusiness,
		IsAdmin:    c.IsAdmin,
	}
	if c.Name != nil {
		id.Name = *c.Name
	}
	return id, true
}

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode splits token on ".", base64-decodes the middle segment and parses
// it as JSON. Any failure is returned wrapped in ErrMalformedToken.
func Decode(token string) (*Claims, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base64: %v", ErrMalformedToken, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object: %v", ErrMalformedToken, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}

	claims := fromMap(raw)
	return &claims, nil
}

// decodeSegment accepts base64url (the JWT encoding, padded or not) and
// falls back to standard base64 as produced by btoa-style encoders.
func decodeSegment(seg string) ([]byte, error) {
	if seg == "" {
		return nil, errors.New("empty segment")
	}
	b, err := parser.DecodeSegment(seg)
	if err == nil {
		return b, nil
	}
	if l := len(seg) % 4; l > 0 {
		seg += strings.Repeat("=", 4-l)
	}
	if b, stdErr := base64.StdEncoding.DecodeString(seg); stdErr == nil {
		return b, nil
	}
	return nil, err
}

func fromMap(raw map[string]any) Claims {
	c := Claims{
		UserID:     str(raw["_id"]),
		Email:      str(raw["email"]),
		IsBusiness: flag(raw["isBusiness"]),
		IsAdmin:    flag(raw["isAdmin"]),
		Raw:        raw,
	}
	if n, ok := raw["name"].(map[string]any); ok {
		c.Name = &models.Name{First: str(n["first"]), Middle: str(n["middle"]), Last: str(n["last"])}
	}

	mc := jwt.MapClaims(raw)
	if iat, err := mc.GetIssuedAt(); err == nil {
		c.IssuedAt = iat
	}
	if exp, err := mc.GetExpirationTime(); err == nil {
		c.ExpiresAt = exp
	}
	return c
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func flag(v any) bool {
	b, _ := v.(bool)
	return b
}
