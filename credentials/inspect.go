package credentials

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo describes the unverified claims of an access or renewal token.
type TokenInfo struct {
	UserID    string
	TokenType string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token's expiry lies before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// Inspect decodes the claims of a JWT without verifying its signature. The
// result is for display only; the server remains the authority on validity.
func Inspect(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	info := &TokenInfo{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if tt, ok := claims["token_type"].(string); ok {
		info.TokenType = tt
	}

	switch uid := claims["user_id"].(type) {
	case string:
		info.UserID = uid
	case float64:
		info.UserID = fmt.Sprintf("%.0f", uid)
	}

	return info, nil
}
