package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers password-reset emails. Configured reports whether a
// transport is available; when it is not, the caller falls back to
// returning the reset link directly (development mode).
type Mailer interface {
	Configured() bool
	SendPasswordReset(to, name, resetLink string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	sender   string
}

// NewSMTP creates a mailer for the given SMTP relay. An empty sender
// falls back to the username.
func NewSMTP(host string, port int, username, password, sender string) *SMTPMailer {
	if sender == "" {
		sender = username
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sender:   sender,
	}
}

// Configured reports whether all relay settings are present
func (m *SMTPMailer) Configured() bool {
	return m.host != "" && m.port != 0 && m.username != "" && m.password != ""
}

// SendPasswordReset sends the recovery link to the user
func (m *SMTPMailer) SendPasswordReset(to, name, resetLink string) error {
	body := fmt.Sprintf(`<h2>Hello, %s!</h2>
<p>We received a request to reset your password on <strong>PetMatch</strong>.</p>
<p>Click the button below to choose a new password:</p>
<a href="%s" style="background-color: #6f4e37; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Reset password</a>
<p><small>If you did not request this, just ignore this email.</small></p>`, name, resetLink)

	msg := strings.Join([]string{
		fmt.Sprintf("From: PetMatch <%s>", m.sender),
		"To: " + to,
		"Subject: Password reset - PetMatch",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
