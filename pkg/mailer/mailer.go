package mailer

import (
	"crypto/tls"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends HTML email. Implementations must treat delivery as
// best-effort: a false return means the message was not sent and the caller
// carries on.
type Mailer interface {
	Send(to string, subject string, htmlBody string) bool
}

// smtpMailer delivers mail through an SMTP relay using gomail.
type smtpMailer struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewSMTPMailer creates a mailer from the SMTP section of the configuration.
func NewSMTPMailer(cfg config.SMTPConfig, logger *logrus.Logger) Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &smtpMailer{
		dialer:  dialer,
		from:    cfg.From,
		timeout: timeout,
		logger:  logger,
	}
}

func (m *smtpMailer) Send(to string, subject string, htmlBody string) bool {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail has no dial timeout of its own, so bound the whole send. A
	// timed-out send is logged and abandoned; the relay may still deliver.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"to":      to,
				"subject": subject,
			}).Warn("Failed to send email")
			return false
		}
		return true
	case <-time.After(m.timeout):
		m.logger.WithFields(logrus.Fields{
			"to":      to,
			"timeout": m.timeout.String(),
		}).Warn("Email send timed out")
		return false
	}
}

// NopMailer discards all mail. Used when SMTP is disabled and in tests.
type NopMailer struct{}

func (NopMailer) Send(to string, subject string, htmlBody string) bool {
	return true
}
