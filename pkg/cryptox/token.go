package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSizeCSRF provides 128 bits of entropy for the anti-forgery
	// secret and the session identifier it is bound to.
	TokenSizeCSRF = 16
	// TokenSizeCredential provides 160 bits of entropy for emailed
	// verification and reset tokens.
	TokenSizeCredential = 20
)

// GenerateHexToken creates a cryptographically secure random token of the
// specified byte length, returned hex-encoded (2*size characters). Hex keeps
// the tokens safe to embed in URLs and email bodies without escaping.
func GenerateHexToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// GenerateNumericCode returns a 6-digit decimal code in [100000, 999999],
// suitable for manual entry. The leading digit is never zero so the code
// survives clients that strip leading zeros.
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate numeric code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// ConstantTimeEquals compares two credential strings without leaking the
// position of the first mismatch through timing.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
