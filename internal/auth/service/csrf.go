package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/pkg/cryptox"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

// DefaultCsrfTTL is how long a session's anti-forgery token lives. Each
// fetch of an existing binding leaves the TTL untouched; only minting a new
// token starts the clock.
const DefaultCsrfTTL = time.Hour

// CsrfService binds anti-forgery tokens to session identifiers in the
// ephemeral store. One live token per session: repeated fetches return the
// same token until it expires.
type CsrfService struct {
	KV store.Ephemeral

	// TTL overrides DefaultCsrfTTL when non-zero.
	TTL time.Duration
}

func (s *CsrfService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultCsrfTTL
}

func csrfKey(sessionID string) string {
	return "csrf:" + sessionID
}

// GetOrCreate returns the live token bound to the session, minting one if
// none exists. When the caller has no session identifier yet, or presents one
// with no live binding, a fresh identifier is minted alongside the token:
// clients never get to choose what enters the keyspace.
func (s *CsrfService) GetOrCreate(ctx context.Context, sessionID string) (sid, token string, err error) {
	log := slogx.FromContext(ctx)

	// 1. Reuse the live binding if one exists.
	if sessionID != "" {
		existing, err := s.KV.Get(ctx, csrfKey(sessionID))
		if err == nil {
			return sessionID, existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to fetch csrf binding", slog.Any("error", err))
			return "", "", err
		}
	}

	// 2. No live binding: mint a fresh session identifier. A dead or unknown
	// identifier is not resurrected.
	sessionID, err = cryptox.GenerateHexToken(cryptox.TokenSizeCSRF)
	if err != nil {
		log.Error("failed to generate session id", slog.Any("error", err))
		return "", "", err
	}

	// 3. Mint and bind a fresh token.
	token, err = cryptox.GenerateHexToken(cryptox.TokenSizeCSRF)
	if err != nil {
		log.Error("failed to generate csrf token", slog.Any("error", err))
		return "", "", err
	}
	if err := s.KV.SetWithTTL(ctx, csrfKey(sessionID), token, s.ttl()); err != nil {
		log.Error("failed to store csrf binding", slog.Any("error", err))
		return "", "", err
	}

	return sessionID, token, nil
}

// Validate reports whether the presented token is the live one bound to the
// session. An absent or expired binding validates nothing.
func (s *CsrfService) Validate(ctx context.Context, sessionID, token string) (bool, error) {
	if sessionID == "" || token == "" {
		return false, nil
	}

	stored, err := s.KV.Get(ctx, csrfKey(sessionID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return cryptox.ConstantTimeEquals(stored, token), nil
}
