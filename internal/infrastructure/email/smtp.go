package email

import (
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for links in notification emails
}

// SMTPEmailService sends ticket notification emails over SMTP.
type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// Send delivers one email. htmlBody may be empty, in which case only the
// plain-text alternative is attached.
func (s *SMTPEmailService) Send(to []string, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	return s.dialer.DialAndSend(m)
}

// BaseURL exposes the configured link base for template rendering.
func (s *SMTPEmailService) BaseURL() string {
	return s.config.BaseURL
}
