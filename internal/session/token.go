// ABOUTME: Unverified JWT inspection for display and staleness warnings
// ABOUTME: Never used for authorization; the gateway verifies every request

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what an access token claims about itself. The claims are
// read without signature verification and must only inform display and
// warnings, never an authorization decision.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Expired   bool
}

// InspectToken parses token without verifying its signature and returns
// the registered claims of interest.
func InspectToken(token string) (TokenInfo, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("parsing token: %w", err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = time.Now().After(claims.ExpiresAt.Time)
	}
	return info, nil
}
