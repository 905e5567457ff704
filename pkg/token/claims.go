// Package token decodes bearer tokens returned by the admin login exchange.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoClaims is returned when a token decodes but carries no claims.
var ErrNoClaims = errors.New("token: no claims")

// DecodeClaims parses the token without verifying its signature and
// flattens the claims into strings.
func DecodeClaims(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, errors.New("token: empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("token: decode: %w", err)
	}
	if len(claims) == 0 {
		return nil, ErrNoClaims
	}

	out := make(map[string]string, len(claims))
	for k, v := range claims {
		out[k] = claimString(v)
	}
	return out, nil
}

// ExpiresAt returns the exp claim of already-decoded claims.
func ExpiresAt(claims map[string]string) (time.Time, bool) {
	raw, ok := claims["exp"]
	if !ok {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

func claimString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
