package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")

	errShortSecret = errors.New("jwtx: signing secret must be at least 32 bytes")
)

// Signer mints signed session tokens.
type Signer interface {
	Sign(claims SessionClaims) (string, error)
}

// Verifier validates a session token and returns its claims if legit.
type Verifier interface {
	Verify(token string) (SessionClaims, error)
}

// HS256 signs and verifies session tokens with a single shared secret. The
// secret is injected configuration, never package state, so tests can run
// against a fixture key. The zero value is unusable; construct via NewHS256.
type HS256 struct {
	secret []byte
}

// NewHS256 creates a signer/verifier pair around the shared secret.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) < 32 {
		return nil, errShortSecret
	}
	return &HS256{secret: secret}, nil
}

// Sign turns the claims into a signed compact JWT string.
func (h *HS256) Sign(claims SessionClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

// Verify parses and validates the token. Only HS256 is accepted; tokens
// carrying any other algorithm fail signature validation. No clock leeway is
// applied to expiry.
func (h *HS256) Verify(tokenStr string) (SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return SessionClaims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, ErrMalformed
	}
	if claims.Subject == "" {
		return SessionClaims{}, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	return *claims, nil
}

// mapParseError folds golang-jwt's error tree into our three-way taxonomy.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
