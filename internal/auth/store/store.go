package store

import (
	"context"
	"errors"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the credential data access interface. Concrete drivers (sqlite
// today) implement this. The account adapter deliberately mirrors a document
// store: lookups by key plus a whole-record Save, no partial updates. Races
// between concurrent read-modify-write cycles on the same account are
// accepted by design.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Accounts interface {
	// FindByID returns an account by id.
	FindByID(ctx context.Context, id string) (domain.Account, error)

	// FindByEmail returns an account by its (unique) email address.
	FindByEmail(ctx context.Context, email string) (domain.Account, error)

	// FindByUsername returns an account by its (unique) username.
	FindByUsername(ctx context.Context, username string) (domain.Account, error)

	// FindByResetToken returns the account currently holding the given
	// password-reset token. Reset completion carries only the token, so the
	// store must support this reverse lookup.
	FindByResetToken(ctx context.Context, token string) (domain.Account, error)

	// Save upserts the whole account record keyed by id and bumps updated_at.
	Save(ctx context.Context, a domain.Account) error

	// DeleteByID removes the account.
	DeleteByID(ctx context.Context, id string) error
}

// Ephemeral is a string key-value store with per-key TTL. It backs only the
// CSRF correlator: bindings live for their TTL and die, there is no scan or
// enumeration. Get and Exists treat an expired key as absent. Per-key
// operations are atomic by assumption of the backing store.
type Ephemeral interface {
	// Get returns the value for key, or ErrNotFound when the key is absent
	// or has expired.
	Get(ctx context.Context, key string) (string, error)

	// SetWithTTL writes the value and (re)starts its TTL.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Exists reports whether the key holds a live value.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying client.
	Close() error
}
