package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendMailer struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string) *MailerSendMailer {
	return &MailerSendMailer{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSendMailer) SendWelcomeEmail(toEmail, toName, tenantName string) error {
	subject := fmt.Sprintf("Your %s account is ready", tenantName)
	text := fmt.Sprintf("Hi %s,\n\nAn account was created for you at %s. Sign in with your email address and the password you were given.", toName, tenantName)
	html := fmt.Sprintf(`
		<h2>Welcome to %s</h2>
		<p>Hi %s,</p>
		<p>An account was created for you. Sign in with your email address and the password you were given.</p>
	`, tenantName, toName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("mailersend error: status=%d", res.StatusCode)
	}
	return nil
}

// FromConfig picks the mailer implementation: dev (log only), MailerSend
// when an API key is set, SMTP otherwise.
func FromConfig(devMode bool, mailerSendKey, fromName, fromEmail, smtpHost string, smtpPort int, smtpUser, smtpPass string, smtpTLS bool) Service {
	if devMode {
		return NewDevMailer()
	}
	if mailerSendKey != "" {
		return NewMailerSendMailer(mailerSendKey, fromName, fromEmail)
	}
	return NewSMTPMailer(smtpHost, smtpPort, fromEmail, smtpUser, smtpPass, smtpTLS)
}
