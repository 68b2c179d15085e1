package domain

import "time"

// Role is the closed set of platform roles. There is no hierarchy between
// them; authorization decisions compare for equality only.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleInstructor Role = "instructor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator, RoleInstructor:
		return true
	}
	return false
}

// AccountStatus is the administrative status of an account. It is distinct
// from the reset-lockout flag (IsLocked), which is managed by the password
// reset flow.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
	StatusLocked   AccountStatus = "locked"
)

// Account is the credential record for a platform user. It is owned by the
// credential store and mutated only through the auth flows: whole-record
// Save, no partial updates and no optimistic concurrency control.
type Account struct {
	ID             string
	Name           string
	Email          string
	Username       string
	CredentialHash string // bcrypt encoded
	Role           Role
	Status         AccountStatus

	// Email verification. All three fields are set together at registration
	// (and on resend) and cleared together on successful verification.
	// IsEmailVerified == true implies all three are unset.
	IsEmailVerified          bool
	EmailVerificationToken   string
	EmailVerificationCode    string // 6 decimal digits
	EmailVerificationExpires *time.Time

	// Password reset. The token is single-use; the attempts counter is bound
	// to reset *initiation* and stays within [0,3]. Hitting 3 attempts locks
	// the account for the lockout window.
	PasswordResetToken    string
	PasswordResetExpires  *time.Time
	PasswordResetAttempts int

	IsLocked  bool
	LockUntil *time.Time

	// FailedLoginAttempts is bookkeeping only: incremented on bad password,
	// reset on successful login. Login does not enforce a lockout from it.
	FailedLoginAttempts int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClearVerification unsets the email verification credentials.
func (a *Account) ClearVerification() {
	a.EmailVerificationToken = ""
	a.EmailVerificationCode = ""
	a.EmailVerificationExpires = nil
}

// ClearReset unsets the password reset credentials and lockout state.
func (a *Account) ClearReset() {
	a.PasswordResetToken = ""
	a.PasswordResetExpires = nil
	a.PasswordResetAttempts = 0
	a.IsLocked = false
	a.LockUntil = nil
}

// Summary is the externally visible projection of an account, returned by
// login and the current-user probe. It never carries credential material.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Summarize builds the external projection of the account.
func (a *Account) Summarize() Summary {
	return Summary{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
