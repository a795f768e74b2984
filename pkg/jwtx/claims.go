// Package jwtx mints and verifies the short-lived session tokens that
// authenticate a manager against the HTTP surface.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for manager session tokens.
// Short-lived on purpose: there is no refresh flow, a manager just logs in
// again.
const DefaultSessionTTL = 30 * time.Minute

// Claims are the session-token claims. Subject carries the manager's user id
// in decimal form.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the session identifier (ULID), minted at login.
	SID string `json:"sid,omitempty"`

	// Username of the authenticated manager.
	Username string `json:"username,omitempty"`

	// Role is always "Manager" for tokens minted by this service; kept as a
	// claim so the middleware can reject anything else without a round trip.
	Role string `json:"role,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(subject, sid, username, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SID:      sid,
		Username: username,
		Role:     role,
	}
}
