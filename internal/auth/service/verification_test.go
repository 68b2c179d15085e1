package service

import (
	"context"
	"testing"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func newVerificationService(t *testing.T) (*VerificationService, *fakeMailer) {
	t.Helper()

	mailer := &fakeMailer{}
	svc := &VerificationService{
		Store:         newTestStore(t),
		Mail:          mailer,
		PublicBaseURL: "https://club.example",
	}
	return svc, mailer
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates an unverified account with credentials", func(t *testing.T) {
		svc, mailer := newVerificationService(t)

		account, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.NoError(t, err)
		require.False(t, account.IsEmailVerified)
		require.Len(t, account.EmailVerificationToken, 40)
		require.Len(t, account.EmailVerificationCode, 6)
		require.NotNil(t, account.EmailVerificationExpires)
		require.NotEqual(t, "pass-123", account.CredentialHash)

		require.Len(t, mailer.sent, 1)
		require.Equal(t, "dana@example.com", mailer.sent[0].To)
		require.Contains(t, mailer.sent[0].Body, account.EmailVerificationToken)
		require.Contains(t, mailer.sent[0].Body, account.EmailVerificationCode)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newVerificationService(t)

		_, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Other", "dana@example.com", "other", "pass-456")
		require.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		svc, _ := newVerificationService(t)

		_, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Other", "other@example.com", "dana", "pass-456")
		require.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _ := newVerificationService(t)

		_, err := svc.Register(ctx, "", "dana@example.com", "dana", "pass-123")
		require.ErrorIs(t, err, ErrInvalidRegistration)
		_, err = svc.Register(ctx, "Dana", "dana@example.com", "dana", "")
		require.ErrorIs(t, err, ErrInvalidRegistration)
	})

	t.Run("send failure keeps the account", func(t *testing.T) {
		svc, mailer := newVerificationService(t)
		mailer.fail = true

		_, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.ErrorIs(t, err, ErrVerificationSendFailed)

		// The account survives so a resend can follow.
		saved, err := svc.Store.Accounts().FindByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, saved.EmailVerificationToken)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	register := func(t *testing.T, svc *VerificationService) domain.Account {
		t.Helper()
		account, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.NoError(t, err)
		return account
	}

	t.Run("token channel verifies and clears credentials", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		account := register(t, svc)

		verified, err := svc.Verify(ctx, "dana@example.com", domain.TokenProof(account.EmailVerificationToken))
		require.NoError(t, err)
		require.True(t, verified.IsEmailVerified)
		require.Empty(t, verified.EmailVerificationToken)
		require.Empty(t, verified.EmailVerificationCode)
		require.Nil(t, verified.EmailVerificationExpires)
	})

	t.Run("code channel verifies too", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		account := register(t, svc)

		verified, err := svc.Verify(ctx, "dana@example.com", domain.CodeProof(account.EmailVerificationCode))
		require.NoError(t, err)
		require.True(t, verified.IsEmailVerified)
	})

	t.Run("wrong value fails", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		register(t, svc)

		_, err := svc.Verify(ctx, "dana@example.com", domain.TokenProof("wrong"))
		require.ErrorIs(t, err, ErrInvalidVerification)
		_, err = svc.Verify(ctx, "dana@example.com", domain.CodeProof("000000"))
		require.ErrorIs(t, err, ErrInvalidVerification)
	})

	t.Run("token does not work through the code channel", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		account := register(t, svc)

		_, err := svc.Verify(ctx, "dana@example.com", domain.CodeProof(account.EmailVerificationToken))
		require.ErrorIs(t, err, ErrInvalidVerification)
	})

	t.Run("expired credentials fail", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		account := register(t, svc)

		svc.Now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		_, err := svc.Verify(ctx, "dana@example.com", domain.TokenProof(account.EmailVerificationToken))
		require.ErrorIs(t, err, ErrVerificationExpired)
	})

	t.Run("verification is a single transition", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		account := register(t, svc)

		_, err := svc.Verify(ctx, "dana@example.com", domain.TokenProof(account.EmailVerificationToken))
		require.NoError(t, err)

		_, err = svc.Verify(ctx, "dana@example.com", domain.TokenProof(account.EmailVerificationToken))
		require.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		svc, _ := newVerificationService(t)

		_, err := svc.Verify(ctx, "nobody@example.com", domain.TokenProof("tok"))
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("empty proof fails", func(t *testing.T) {
		svc, _ := newVerificationService(t)
		register(t, svc)

		_, err := svc.Verify(ctx, "dana@example.com", domain.VerificationProof{})
		require.ErrorIs(t, err, ErrInvalidVerification)
	})
}

func TestResend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reissues credentials and invalidates the old pair", func(t *testing.T) {
		svc, mailer := newVerificationService(t)

		account, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.NoError(t, err)
		oldToken := account.EmailVerificationToken

		refreshed, err := svc.Resend(ctx, "dana@example.com")
		require.NoError(t, err)
		require.NotEqual(t, oldToken, refreshed.EmailVerificationToken)
		require.Len(t, mailer.sent, 2)

		_, err = svc.Verify(ctx, "dana@example.com", domain.TokenProof(oldToken))
		require.ErrorIs(t, err, ErrInvalidVerification)

		_, err = svc.Verify(ctx, "dana@example.com", domain.TokenProof(refreshed.EmailVerificationToken))
		require.NoError(t, err)
	})

	t.Run("verified accounts cannot resend", func(t *testing.T) {
		svc, _ := newVerificationService(t)

		account, err := svc.Register(ctx, "Dana", "dana@example.com", "dana", "pass-123")
		require.NoError(t, err)
		_, err = svc.Verify(ctx, "dana@example.com", domain.TokenProof(account.EmailVerificationToken))
		require.NoError(t, err)

		_, err = svc.Resend(ctx, "dana@example.com")
		require.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		svc, _ := newVerificationService(t)

		_, err := svc.Resend(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}
