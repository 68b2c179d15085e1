package service

import (
	"context"
	"testing"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *jwtx.HS256) {
	t.Helper()

	tokens, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	return &AuthService{
		Store:  newTestStore(t),
		Signer: tokens,
	}, tokens
}

func seedVerified(t *testing.T, st store.Store, email, username string) domain.Account {
	t.Helper()

	a := seedAccount(t, st, email)
	a.Username = username
	require.NoError(t, st.Accounts().Save(context.Background(), a))
	return a
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("login by email returns a verifiable session", func(t *testing.T) {
		svc, tokens := newAuthService(t)
		seeded := seedVerified(t, svc.Store, "dana@example.com", "dana")

		user, token, err := svc.Login(ctx, "dana@example.com", "old-pass")
		require.NoError(t, err)
		require.Equal(t, seeded.ID, user.ID)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		require.Equal(t, seeded.ID, claims.AccountID())
	})

	t.Run("login by username works too", func(t *testing.T) {
		svc, _ := newAuthService(t)
		seeded := seedVerified(t, svc.Store, "dana@example.com", "dana")

		user, _, err := svc.Login(ctx, "dana", "old-pass")
		require.NoError(t, err)
		require.Equal(t, seeded.ID, user.ID)
	})

	t.Run("unverified email blocks login", func(t *testing.T) {
		svc, _ := newAuthService(t)
		a := seedVerified(t, svc.Store, "dana@example.com", "dana")
		a.IsEmailVerified = false
		require.NoError(t, svc.Store.Accounts().Save(ctx, a))

		_, _, err := svc.Login(ctx, "dana@example.com", "old-pass")
		require.ErrorIs(t, err, ErrEmailNotVerified)
	})

	t.Run("wrong password counts the failure", func(t *testing.T) {
		svc, _ := newAuthService(t)
		seedVerified(t, svc.Store, "dana@example.com", "dana")

		_, _, err := svc.Login(ctx, "dana@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, _, err = svc.Login(ctx, "dana@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		saved, err := svc.Store.Accounts().FindByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		require.Equal(t, 2, saved.FailedLoginAttempts)
	})

	t.Run("successful login resets the failure counter", func(t *testing.T) {
		svc, _ := newAuthService(t)
		seedVerified(t, svc.Store, "dana@example.com", "dana")

		_, _, err := svc.Login(ctx, "dana@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "dana@example.com", "old-pass")
		require.NoError(t, err)

		saved, err := svc.Store.Accounts().FindByEmail(ctx, "dana@example.com")
		require.NoError(t, err)
		require.Equal(t, 0, saved.FailedLoginAttempts)
	})

	t.Run("unknown identifier and wrong password are the same error", func(t *testing.T) {
		svc, _ := newAuthService(t)
		seedVerified(t, svc.Store, "dana@example.com", "dana")

		_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "old-pass")
		_, _, wrongErr := svc.Login(ctx, "dana@example.com", "wrong")
		require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	})

	t.Run("blank input fails", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, _, err := svc.Login(ctx, "", "pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, _, err = svc.Login(ctx, "dana", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestIssueSession(t *testing.T) {
	t.Parallel()

	svc, tokens := newAuthService(t)
	svc.SessionTTL = time.Minute

	token, err := svc.IssueSession(context.Background(), "acc-1")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.AccountID())
	require.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("resolves an existing account", func(t *testing.T) {
		svc, _ := newAuthService(t)
		seeded := seedVerified(t, svc.Store, "dana@example.com", "dana")

		user, err := svc.CurrentUser(ctx, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, user)
		require.Equal(t, seeded.Email, user.Email)
	})

	t.Run("blank id means nobody", func(t *testing.T) {
		svc, _ := newAuthService(t)

		user, err := svc.CurrentUser(ctx, "")
		require.NoError(t, err)
		require.Nil(t, user)
	})

	t.Run("vanished account means nobody", func(t *testing.T) {
		svc, _ := newAuthService(t)

		user, err := svc.CurrentUser(ctx, "gone")
		require.NoError(t, err)
		require.Nil(t, user)
	})
}
