package mailer

type Service interface {
	SendWelcomeEmail(toEmail, toName, tenantName string) error
}
