package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/mail"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/pkg/cryptox"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

var (
	ErrAccountLocked       = errors.New("account locked due to too many reset requests")
	ErrResetSendFailed     = errors.New("failed to send password reset email")
	ErrInvalidResetToken   = errors.New("password reset token is invalid or has expired")
	ErrInvalidResetRequest = errors.New("invalid password reset request")
)

// Reset flow defaults.
const (
	DefaultResetTokenTTL = time.Hour
	DefaultResetLockout  = 24 * time.Hour
	DefaultResetAttempts = 3
)

// ResetService owns the password reset flow and its lockout state machine.
// The attempts counter is bound to reset initiation, never to login: the
// third initiation locks the account for the lockout window, and only a
// completed reset or a lapsed lock clears the counter.
type ResetService struct {
	Store store.Store
	Mail  mail.Dispatcher

	// PublicBaseURL is the website origin embedded in emailed links.
	PublicBaseURL string

	// TokenTTL, LockWindow, and MaxAttempts override the defaults when set.
	TokenTTL    time.Duration
	LockWindow  time.Duration
	MaxAttempts int

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

func (s *ResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ResetService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultResetTokenTTL
}

func (s *ResetService) lockWindow() time.Duration {
	if s.LockWindow > 0 {
		return s.LockWindow
	}
	return DefaultResetLockout
}

func (s *ResetService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultResetAttempts
}

// Initiate starts a password reset: it mints a single-use token, counts the
// attempt, and emails the reset link. The attempt that reaches the maximum
// locks the account even when the email fails to send; a send failure only
// refunds the counter increment.
func (s *ResetService) Initiate(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	// 1. Look up the account.
	account, err := s.Store.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("password reset requested for unknown email")
			return ErrAccountNotFound
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return err
	}

	// 2. Enforce the lock, releasing it first if the window has lapsed.
	if account.IsLocked {
		if account.LockUntil == nil || s.now().Before(*account.LockUntil) {
			log.Warn("password reset requested for locked account",
				slog.String("account_id", account.ID),
			)
			return ErrAccountLocked
		}
		account.IsLocked = false
		account.LockUntil = nil
		account.PasswordResetAttempts = 0
	}

	// 3. Count the attempt; the one that reaches the cap locks the account.
	account.PasswordResetAttempts++
	if account.PasswordResetAttempts >= s.maxAttempts() {
		until := s.now().Add(s.lockWindow())
		account.IsLocked = true
		account.LockUntil = &until
		log.Warn("account locked after repeated reset requests",
			slog.String("account_id", account.ID),
			slog.Time("lock_until", until),
		)
	}

	// 4. Mint the single-use token.
	token, err := cryptox.GenerateHexToken(cryptox.TokenSizeCredential)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return err
	}
	expires := s.now().Add(s.tokenTTL())
	account.PasswordResetToken = token
	account.PasswordResetExpires = &expires
	account.UpdatedAt = s.now()

	if err := s.Store.Accounts().Save(ctx, account); err != nil {
		log.Error("failed to save account", slog.Any("error", err))
		return err
	}

	// 5. Email the link. On failure refund the counter increment; the lock,
	// if it was taken, stays.
	attemptsLeft := s.maxAttempts() - account.PasswordResetAttempts
	if err := s.sendReset(account.Email, token, attemptsLeft); err != nil {
		log.Error("failed to send reset email",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		account.PasswordResetAttempts--
		account.UpdatedAt = s.now()
		if saveErr := s.Store.Accounts().Save(ctx, account); saveErr != nil {
			log.Error("failed to refund reset attempt", slog.Any("error", saveErr))
		}
		return ErrResetSendFailed
	}

	log.Info("password reset initiated",
		slog.String("account_id", account.ID),
		slog.Int("attempts", account.PasswordResetAttempts),
	)

	return nil
}

// Complete finishes a reset: it exchanges a live token for a new password
// and clears the whole reset state, lock included.
func (s *ResetService) Complete(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if token == "" {
		return ErrInvalidResetToken
	}
	if newPassword == "" {
		return ErrInvalidResetRequest
	}

	// 2. The token is the only credential; look the account up by it.
	account, err := s.Store.Accounts().FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("password reset completion attempted with unknown token")
			return ErrInvalidResetToken
		}
		log.Error("failed to fetch account by reset token", slog.Any("error", err))
		return err
	}

	// 3. A lapsed token is indistinguishable from a wrong one.
	if account.PasswordResetExpires == nil || s.now().After(*account.PasswordResetExpires) {
		log.Warn("password reset completion attempted with expired token",
			slog.String("account_id", account.ID),
		)
		return ErrInvalidResetToken
	}

	// 4. Install the new credential and clear all reset state.
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}
	account.CredentialHash = hash
	account.ClearReset()
	account.UpdatedAt = s.now()

	if err := s.Store.Accounts().Save(ctx, account); err != nil {
		log.Error("failed to save account", slog.Any("error", err))
		return err
	}

	log.Info("password reset completed", slog.String("account_id", account.ID))

	return nil
}

func (s *ResetService) sendReset(to, token string, attemptsLeft int) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.PublicBaseURL, token)
	subject, body := mail.ResetEmail(link, attemptsLeft)
	return s.Mail.Send(to, subject, body)
}
