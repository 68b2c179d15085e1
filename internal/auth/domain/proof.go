package domain

// VerificationProof is exactly one of the two email-ownership channels: the
// long link token or the short numeric code. Modelling it as a tagged value
// keeps the "one channel, never both" contract explicit instead of two
// optional fields checked ad hoc.
type VerificationProof struct {
	kind  proofKind
	value string
}

type proofKind uint8

const (
	proofToken proofKind = iota + 1
	proofCode
)

// TokenProof wraps the link-based verification token.
func TokenProof(token string) VerificationProof {
	return VerificationProof{kind: proofToken, value: token}
}

// CodeProof wraps the manually entered 6-digit code.
func CodeProof(code string) VerificationProof {
	return VerificationProof{kind: proofCode, value: code}
}

// IsToken reports whether the proof came through the link channel.
func (p VerificationProof) IsToken() bool { return p.kind == proofToken }

// IsCode reports whether the proof came through the numeric-code channel.
func (p VerificationProof) IsCode() bool { return p.kind == proofCode }

// IsZero reports whether no proof was supplied at all.
func (p VerificationProof) IsZero() bool { return p.kind == 0 || p.value == "" }

// Value returns the raw credential string.
func (p VerificationProof) Value() string { return p.value }
