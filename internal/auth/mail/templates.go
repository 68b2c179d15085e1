package mail

import (
	"fmt"
	"html"
)

// VerificationEmail builds the welcome + verify-email message. The link and
// the numeric code are alternate routes to the same verification.
func VerificationEmail(name, verifyLink, code string) (subject, body string) {
	subject = "Welcome to Hebrew Club - Verify Your Email Address"
	body = fmt.Sprintf(`
		<h1>Welcome to Hebrew Club, %s!</h1>
		<p>We're thrilled to have you join our community of Hebrew language learners.</p>
		<p>To get started, please verify your email address by clicking the link below:</p>
		<p><a href="%s">Verify Email Address</a></p>
		<p>If the link doesn't work, copy and paste it into your browser:</p>
		<p>%s</p>
		<p>Alternatively, you can use this verification code: <strong>%s</strong></p>
		<p>If you have any questions, don't hesitate to reach out to our support team.</p>
		<p>Best regards,<br>The Hebrew Club Team</p>
	`, html.EscapeString(name), verifyLink, verifyLink, code)
	return subject, body
}

// ResetEmail builds the password reset message. attemptsLeft tells the
// recipient how many more reset requests are allowed before the account
// locks.
func ResetEmail(resetLink string, attemptsLeft int) (subject, body string) {
	subject = "Password Reset Request"
	body = fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>If the link doesn't work, copy and paste it into your browser:</p>
		<p>%s</p>
		<p>This link expires in one hour. You have %d reset request(s) remaining before your account is temporarily locked.</p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, resetLink, resetLink, attemptsLeft)
	return subject, body
}
