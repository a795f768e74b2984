package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalid     = errors.New("jwtx: invalid token")
)

// Signer signs session claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and returns the claims if it is legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// EdDSA holds an Ed25519 keypair and implements both Signer and Verifier.
// Keys live for the process lifetime only; a restart invalidates every
// outstanding session, which is acceptable for a single-instance service
// with no refresh flow.
type EdDSA struct {
	kid    string
	issuer string
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
}

// NewEphemeralEdDSA generates a fresh Ed25519 keypair for session signing.
func NewEphemeralEdDSA(issuer string) (*EdDSA, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}

	kidRaw := make([]byte, 8)
	if _, err := rand.Read(kidRaw); err != nil {
		return nil, err
	}

	return &EdDSA{
		kid:    base64.RawURLEncoding.EncodeToString(kidRaw),
		issuer: issuer,
		priv:   priv,
		pub:    pub,
	}, nil
}

// KID returns the key identifier stamped into token headers.
func (k *EdDSA) KID() string { return k.kid }

// Sign produces a compact EdDSA-signed JWT for the given claims.
func (k *EdDSA) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	token.Header["kid"] = k.kid
	return token.SignedString(k.priv)
}

// Verify parses and validates a compact JWT, enforcing the EdDSA method,
// this key's kid, the configured issuer and the standard time claims.
func (k *EdDSA) Verify(raw string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, ErrAlgMismatch
		}
		if kid, _ := t.Header["kid"].(string); kid != k.kid {
			return nil, ErrInvalid
		}
		return k.pub, nil
	}, jwt.WithIssuer(k.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, ErrMalformed
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalid
	}

	return claims, nil
}
