package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the fixed lifetime of a session token. Sessions are
// stateless: there is no revocation list, so expiry is the only way a token
// dies.
const DefaultSessionTTL = 24 * time.Hour

// SessionClaims are the claims embedded in a session token. The subject is
// the account id; everything else is standard timing metadata.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// NewSessionClaims builds claims for the given account with expiry fixed at
// now+ttl. The caller supplies now so tests can issue tokens in the past.
func NewSessionClaims(accountID string, ttl time.Duration, now time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// AccountID returns the subject claim.
func (c *SessionClaims) AccountID() string { return c.Subject }
