package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store/drivers/rediskv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newCsrfService(t *testing.T) (*CsrfService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := rediskv.NewStore(client, "auth")
	t.Cleanup(func() { _ = kv.Close() })

	return &CsrfService{KV: kv}, mr
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("mints a session id for first-time callers", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		sid, token, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)
		require.Len(t, sid, 32)
		require.Len(t, token, 32)
	})

	t.Run("repeated fetches return the same token", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		sid, token, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)

		again, token2, err := svc.GetOrCreate(ctx, sid)
		require.NoError(t, err)
		require.Equal(t, sid, again)
		require.Equal(t, token, token2)
	})

	t.Run("different sessions get different tokens", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		_, a, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)
		_, b, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("unknown session ids are never adopted", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		sid, token, err := svc.GetOrCreate(ctx, "client-chosen-id")
		require.NoError(t, err)
		require.NotEqual(t, "client-chosen-id", sid)
		require.Len(t, sid, 32)

		// The minted binding lives under the fresh id, not the supplied one.
		ok, err := svc.Validate(ctx, sid, token)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = svc.Validate(ctx, "client-chosen-id", token)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("expiry mints a fresh session id and token", func(t *testing.T) {
		svc, mr := newCsrfService(t)

		sid, old, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)

		mr.FastForward(2 * time.Hour)

		freshSid, fresh, err := svc.GetOrCreate(ctx, sid)
		require.NoError(t, err)
		require.NotEqual(t, sid, freshSid)
		require.NotEqual(t, old, fresh)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("accepts the bound token", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		sid, token, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)

		ok, err := svc.Validate(ctx, sid, token)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("rejects a wrong token", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		sid, _, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)

		ok, err := svc.Validate(ctx, sid, "forged")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("rejects a token bound to another session", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		_, tokenA, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)
		sidB, _, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)

		ok, err := svc.Validate(ctx, sidB, tokenA)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("rejects expired bindings", func(t *testing.T) {
		svc, mr := newCsrfService(t)

		sid, token, err := svc.GetOrCreate(ctx, "")
		require.NoError(t, err)

		mr.FastForward(2 * time.Hour)

		ok, err := svc.Validate(ctx, sid, token)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("rejects blank inputs", func(t *testing.T) {
		svc, _ := newCsrfService(t)

		ok, err := svc.Validate(ctx, "", "token")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = svc.Validate(ctx, "session", "")
		require.NoError(t, err)
		require.False(t, ok)
	})
}
