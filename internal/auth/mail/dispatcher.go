// Package mail sends transactional email for the auth service. Delivery
// goes through the Dispatcher interface so services can be tested without
// an SMTP server.
package mail

// Dispatcher delivers a single HTML email.
type Dispatcher interface {
	Send(to, subject, htmlBody string) error
}
