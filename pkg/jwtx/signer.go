package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can turn Claims into a signed JWT string.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// MinSecretLength is the minimum HS256 secret size we accept. Anything
// shorter than the HMAC block makes brute forcing the signing key cheaper
// than brute forcing a password.
const MinSecretLength = 32

// HS256Signer signs tokens with a process-wide shared secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer from the shared secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign produces the compact serialized JWT for the given claims.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
