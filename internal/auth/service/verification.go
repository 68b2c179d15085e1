package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/mail"
	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"
	"github.com/eytanenglard/HebrewClubBackend/pkg/cryptox"
	"github.com/eytanenglard/HebrewClubBackend/pkg/idx"
	"github.com/eytanenglard/HebrewClubBackend/pkg/slogx"
)

var (
	ErrInvalidRegistration    = errors.New("invalid registration request")
	ErrAccountExists          = errors.New("account already exists")
	ErrAccountNotFound        = errors.New("account not found")
	ErrAlreadyVerified        = errors.New("email already verified")
	ErrInvalidVerification    = errors.New("invalid verification token or code")
	ErrVerificationExpired    = errors.New("verification token or code has expired")
	ErrVerificationSendFailed = errors.New("failed to send verification email")
)

// DefaultVerificationTTL is the shared lifetime of the verification token
// and code pair.
const DefaultVerificationTTL = 24 * time.Hour

// VerificationService owns registration and the email verification state
// machine. An account is Unverified from registration until exactly one
// successful Verify; both credential channels share one expiry and both die
// together.
type VerificationService struct {
	Store store.Store
	Mail  mail.Dispatcher

	// PublicBaseURL is the website origin embedded in emailed links.
	PublicBaseURL string

	// TokenTTL overrides DefaultVerificationTTL when non-zero.
	TokenTTL time.Duration

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *VerificationService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultVerificationTTL
}

// Register creates an unverified account and emails its verification
// credentials. When the email cannot be sent the account still exists; the
// caller gets ErrVerificationSendFailed and the user can ask for a resend.
func (s *VerificationService) Register(ctx context.Context, name, email, username, password string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if name == "" || email == "" || username == "" || password == "" {
		log.Warn("registration missing required fields")
		return domain.Account{}, ErrInvalidRegistration
	}

	// 2. Reject duplicate email or username up front for a clean error. The
	// unique constraints in the store remain the real guard.
	if _, err := s.Store.Accounts().FindByEmail(ctx, email); err == nil {
		log.Warn("registration attempted with existing email")
		return domain.Account{}, ErrAccountExists
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Account{}, err
	}
	if _, err := s.Store.Accounts().FindByUsername(ctx, username); err == nil {
		log.Warn("registration attempted with existing username",
			slog.String("username", username),
		)
		return domain.Account{}, ErrAccountExists
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 3. Hash the password.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 4. Mint the verification credential pair.
	token, code, expires, err := s.mintVerification()
	if err != nil {
		log.Error("failed to generate verification credentials", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 5. Persist the account.
	now := s.now()
	account := domain.Account{
		ID:                       idx.New().String(),
		Name:                     name,
		Email:                    email,
		Username:                 username,
		CredentialHash:           hash,
		Role:                     domain.RoleUser,
		Status:                   domain.StatusActive,
		IsEmailVerified:          false,
		EmailVerificationToken:   token,
		EmailVerificationCode:    code,
		EmailVerificationExpires: &expires,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.Store.Accounts().Save(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrAccountExists
		}
		log.Error("failed to save account", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
	)

	// 6. Email the credentials. The account stays registered either way.
	if err := s.sendVerification(account); err != nil {
		log.Error("failed to send verification email",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return account, ErrVerificationSendFailed
	}

	return account, nil
}

// Verify consumes a verification proof for the account and marks its email
// verified. Either channel is accepted; both are cleared on success, so the
// transition happens at most once.
func (s *VerificationService) Verify(ctx context.Context, email string, proof domain.VerificationProof) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. A proof must come through exactly one channel.
	if proof.IsZero() {
		return domain.Account{}, ErrInvalidVerification
	}

	// 2. Look up the account.
	account, err := s.Store.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("verification attempted for unknown email")
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 3. Verification is a single transition.
	if account.IsEmailVerified {
		return domain.Account{}, ErrAlreadyVerified
	}

	// 4. Match the proof against its channel.
	var stored string
	if proof.IsToken() {
		stored = account.EmailVerificationToken
	} else {
		stored = account.EmailVerificationCode
	}
	if stored == "" || !cryptox.ConstantTimeEquals(stored, proof.Value()) {
		log.Warn("verification attempted with wrong credential",
			slog.String("account_id", account.ID),
		)
		return domain.Account{}, ErrInvalidVerification
	}

	// 5. Both channels share one expiry.
	if account.EmailVerificationExpires == nil || s.now().After(*account.EmailVerificationExpires) {
		return domain.Account{}, ErrVerificationExpired
	}

	// 6. Flip to verified and burn the credentials.
	account.IsEmailVerified = true
	account.ClearVerification()
	account.UpdatedAt = s.now()
	if err := s.Store.Accounts().Save(ctx, account); err != nil {
		log.Error("failed to save verified account", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("email verified", slog.String("account_id", account.ID))

	return account, nil
}

// Resend replaces the verification credentials with a fresh pair and emails
// them. The previous token and code stop working immediately.
func (s *VerificationService) Resend(ctx context.Context, email string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the account.
	account, err := s.Store.Accounts().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("resend attempted for unknown email")
			return domain.Account{}, ErrAccountNotFound
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Account{}, err
	}

	// 2. Nothing to verify once verified.
	if account.IsEmailVerified {
		return domain.Account{}, ErrAlreadyVerified
	}

	// 3. Mint and persist a fresh pair, invalidating the old one.
	token, code, expires, err := s.mintVerification()
	if err != nil {
		log.Error("failed to generate verification credentials", slog.Any("error", err))
		return domain.Account{}, err
	}
	account.EmailVerificationToken = token
	account.EmailVerificationCode = code
	account.EmailVerificationExpires = &expires
	account.UpdatedAt = s.now()
	if err := s.Store.Accounts().Save(ctx, account); err != nil {
		log.Error("failed to save account", slog.Any("error", err))
		return domain.Account{}, err
	}

	log.Info("verification credentials reissued", slog.String("account_id", account.ID))

	// 4. Email the new pair.
	if err := s.sendVerification(account); err != nil {
		log.Error("failed to send verification email",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return account, ErrVerificationSendFailed
	}

	return account, nil
}

// mintVerification generates a token/code pair with a shared expiry.
func (s *VerificationService) mintVerification() (token, code string, expires time.Time, err error) {
	token, err = cryptox.GenerateHexToken(cryptox.TokenSizeCredential)
	if err != nil {
		return "", "", time.Time{}, err
	}
	code, err = cryptox.GenerateNumericCode()
	if err != nil {
		return "", "", time.Time{}, err
	}
	return token, code, s.now().Add(s.ttl()), nil
}

func (s *VerificationService) sendVerification(a domain.Account) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.PublicBaseURL, a.EmailVerificationToken)
	subject, body := mail.VerificationEmail(a.Name, link, a.EmailVerificationCode)
	return s.Mail.Send(a.Email, subject, body)
}
