package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testAccount(id, email, username string) domain.Account {
	return domain.Account{
		ID:             id,
		Name:           "Test User",
		Email:          email,
		Username:       username,
		CredentialHash: "bcrypt-hash",
		Role:           domain.RoleUser,
		Status:         domain.StatusActive,
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("acc-1", "one@example.com", "one")
	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	a.EmailVerificationToken = "tok"
	a.EmailVerificationCode = "123456"
	a.EmailVerificationExpires = &expires

	require.NoError(t, st.Accounts().Save(ctx, a))

	t.Run("find by id", func(t *testing.T) {
		got, err := st.Accounts().FindByID(ctx, "acc-1")
		require.NoError(t, err)
		require.Equal(t, a.Email, got.Email)
		require.Equal(t, "tok", got.EmailVerificationToken)
		require.Equal(t, "123456", got.EmailVerificationCode)
		require.NotNil(t, got.EmailVerificationExpires)
		require.WithinDuration(t, expires, *got.EmailVerificationExpires, time.Second)
	})

	t.Run("find by email and username", func(t *testing.T) {
		byEmail, err := st.Accounts().FindByEmail(ctx, "one@example.com")
		require.NoError(t, err)
		require.Equal(t, "acc-1", byEmail.ID)

		byUsername, err := st.Accounts().FindByUsername(ctx, "one")
		require.NoError(t, err)
		require.Equal(t, "acc-1", byUsername.ID)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := st.Accounts().FindByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Accounts().FindByEmail(ctx, "nope@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAccountsUpsert(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("acc-1", "one@example.com", "one")
	require.NoError(t, st.Accounts().Save(ctx, a))

	a.IsEmailVerified = true
	a.EmailVerificationToken = ""
	a.FailedLoginAttempts = 2
	require.NoError(t, st.Accounts().Save(ctx, a))

	got, err := st.Accounts().FindByID(ctx, "acc-1")
	require.NoError(t, err)
	require.True(t, got.IsEmailVerified)
	require.Empty(t, got.EmailVerificationToken)
	require.Equal(t, 2, got.FailedLoginAttempts)
}

func TestAccountsUniqueConstraints(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Accounts().Save(ctx, testAccount("acc-1", "dup@example.com", "dup")))

	err := st.Accounts().Save(ctx, testAccount("acc-2", "dup@example.com", "other"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	err = st.Accounts().Save(ctx, testAccount("acc-3", "other@example.com", "dup"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestFindByResetToken(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	a := testAccount("acc-1", "one@example.com", "one")
	a.PasswordResetToken = "reset-tok"
	require.NoError(t, st.Accounts().Save(ctx, a))

	// An account with no outstanding reset must never match.
	require.NoError(t, st.Accounts().Save(ctx, testAccount("acc-2", "two@example.com", "two")))

	got, err := st.Accounts().FindByResetToken(ctx, "reset-tok")
	require.NoError(t, err)
	require.Equal(t, "acc-1", got.ID)

	_, err = st.Accounts().FindByResetToken(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Accounts().FindByResetToken(ctx, "unknown")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Accounts().Save(ctx, testAccount("acc-1", "one@example.com", "one")))
	require.NoError(t, st.Accounts().DeleteByID(ctx, "acc-1"))

	_, err := st.Accounts().FindByID(ctx, "acc-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}
