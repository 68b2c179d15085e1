package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/pkg/cryptox"
	"github.com/eytanenglard/HebrewClubBackend/pkg/jwtx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// AuthService issues and resolves stateless sessions. Logout has no server
// side: a session dies only by expiry, so there is nothing here to revoke.
type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer

	// SessionTTL overrides jwtx.DefaultSessionTTL when non-zero.
	SessionTTL time.Duration

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

// Login authenticates by email or username plus password and returns the
// account summary with a fresh session token. Unknown identifier and wrong
// password are deliberately the same error; an unverified email is not.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.Summary, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if identifier == "" || password == "" {
		return domain.Summary{}, "", ErrInvalidCredentials
	}

	// 2. Resolve the identifier: email first, then username.
	account, err := s.Store.Accounts().FindByEmail(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		account, err = s.Store.Accounts().FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown identifier")
			return domain.Summary{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Summary{}, "", err
	}

	// 3. An unverified email blocks login before the password is checked.
	if !account.IsEmailVerified {
		log.Warn("login attempted before email verification",
			slog.String("account_id", account.ID),
		)
		return domain.Summary{}, "", ErrEmailNotVerified
	}

	// 4. Check the password, keeping the failure counter current.
	if err := cryptox.VerifyPassword(password, account.CredentialHash); err != nil {
		account.FailedLoginAttempts++
		account.UpdatedAt = s.now()
		if saveErr := s.Store.Accounts().Save(ctx, account); saveErr != nil {
			log.Error("failed to record login failure", slog.Any("error", saveErr))
		}
		log.Warn("login attempted with wrong password",
			slog.String("account_id", account.ID),
			slog.Int("failed_attempts", account.FailedLoginAttempts),
		)
		return domain.Summary{}, "", ErrInvalidCredentials
	}

	// 5. A successful login resets the failure counter.
	if account.FailedLoginAttempts != 0 {
		account.FailedLoginAttempts = 0
		account.UpdatedAt = s.now()
		if err := s.Store.Accounts().Save(ctx, account); err != nil {
			log.Error("failed to reset login failure counter", slog.Any("error", err))
		}
	}

	// 6. Mint the session.
	token, err := s.IssueSession(ctx, account.ID)
	if err != nil {
		return domain.Summary{}, "", err
	}

	log.Info("login succeeded", slog.String("account_id", account.ID))

	return account.Summarize(), token, nil
}

// IssueSession mints a session token for the account. Email verification
// also uses this to log the user straight in.
func (s *AuthService) IssueSession(ctx context.Context, accountID string) (string, error) {
	log := slogx.FromContext(ctx)

	claims := jwtx.NewSessionClaims(accountID, s.sessionTTL(), s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", err
	}
	return token, nil
}

// CurrentUser resolves an authenticated account id to its summary. A blank
// id or a vanished account yields no user rather than an error; the probe
// answers "who am I", and "nobody" is a valid answer.
func (s *AuthService) CurrentUser(ctx context.Context, accountID string) (*domain.Summary, error) {
	if accountID == "" {
		return nil, nil
	}

	account, err := s.Store.Accounts().FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		slogx.FromContext(ctx).Error("failed to fetch account", slog.Any("error", err))
		return nil, err
	}

	summary := account.Summarize()
	return &summary, nil
}
