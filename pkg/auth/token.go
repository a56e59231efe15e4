package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims mirrors what the tracker API signs into its bearer tokens.
// The role claim carries the user's role list.
type TokenClaims struct {
	Roles []string `json:"role"`
	jwt.RegisteredClaims
}

// TokenInfo is the informational view of a token. It is never used for authorization.
type TokenInfo struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token has passed its exp claim at now.
// Tokens without exp never expire.
func (i TokenInfo) Expired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(i.ExpiresAt)
}

// InspectToken decodes the claims without verifying the signature. The console
// never holds the signing secret; the API stays the authority on validity.
func InspectToken(tokenString string) (*TokenInfo, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("token is required")
	}

	claims := &TokenClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	info := &TokenInfo{
		Subject: claims.Subject,
		Roles:   claims.Roles,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, nil
}
