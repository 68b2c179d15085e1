package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/domain"
)

type accountsRepo struct {
	db *sql.DB
}

const accountColumns = `id, name, email, username, credential_hash, role, status,
	is_email_verified, email_verification_token, email_verification_code, email_verification_expires,
	password_reset_token, password_reset_expires, password_reset_attempts,
	is_locked, lock_until, failed_login_attempts, created_at, updated_at`

func (r *accountsRepo) FindByID(ctx context.Context, id string) (domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
}

func (r *accountsRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
}

func (r *accountsRepo) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
}

func (r *accountsRepo) FindByResetToken(ctx context.Context, token string) (domain.Account, error) {
	if token == "" {
		// Guard against matching accounts that have no outstanding reset.
		return domain.Account{}, mapNotFound(sql.ErrNoRows)
	}
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE password_reset_token = ?`, token)
}

func (r *accountsRepo) findOne(ctx context.Context, query string, arg any) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var (
		a             domain.Account
		verifyToken   sql.NullString
		verifyCode    sql.NullString
		verifyExpires sql.NullTime
		resetToken    sql.NullString
		resetExpires  sql.NullTime
		lockUntil     sql.NullTime
	)

	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Username, &a.CredentialHash, &a.Role, &a.Status,
		&a.IsEmailVerified, &verifyToken, &verifyCode, &verifyExpires,
		&resetToken, &resetExpires, &a.PasswordResetAttempts,
		&a.IsLocked, &lockUntil, &a.FailedLoginAttempts, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.EmailVerificationToken = verifyToken.String
	a.EmailVerificationCode = verifyCode.String
	a.EmailVerificationExpires = nullTimePtr(verifyExpires)
	a.PasswordResetToken = resetToken.String
	a.PasswordResetExpires = nullTimePtr(resetExpires)
	a.LockUntil = nullTimePtr(lockUntil)
	return a, nil
}

func (r *accountsRepo) Save(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			username = excluded.username,
			credential_hash = excluded.credential_hash,
			role = excluded.role,
			status = excluded.status,
			is_email_verified = excluded.is_email_verified,
			email_verification_token = excluded.email_verification_token,
			email_verification_code = excluded.email_verification_code,
			email_verification_expires = excluded.email_verification_expires,
			password_reset_token = excluded.password_reset_token,
			password_reset_expires = excluded.password_reset_expires,
			password_reset_attempts = excluded.password_reset_attempts,
			is_locked = excluded.is_locked,
			lock_until = excluded.lock_until,
			failed_login_attempts = excluded.failed_login_attempts,
			updated_at = excluded.updated_at`,
		a.ID, a.Name, a.Email, a.Username, a.CredentialHash, string(a.Role), string(a.Status),
		a.IsEmailVerified, nullString(a.EmailVerificationToken), nullString(a.EmailVerificationCode), nullTime(a.EmailVerificationExpires),
		nullString(a.PasswordResetToken), nullTime(a.PasswordResetExpires), a.PasswordResetAttempts,
		a.IsLocked, nullTime(a.LockUntil), a.FailedLoginAttempts, a.CreatedAt, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
