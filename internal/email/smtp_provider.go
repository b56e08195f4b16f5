package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	SendTimeout time.Duration
}

// SMTPProvider sends mail over SMTP via gomail.
type SMTPProvider struct {
	config SMTPConfig
}

func NewSMTPProvider(config SMTPConfig) *SMTPProvider {
	if config.SendTimeout <= 0 {
		config.SendTimeout = 10 * time.Second
	}
	return &SMTPProvider{config: config}
}

func (p *SMTPProvider) Send(ctx context.Context, msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.config.FromEmail, p.config.FromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	d := gomail.NewDialer(p.config.Host, p.config.Port, p.config.Username, p.config.Password)

	// gomail has no context support; bound the dial-and-send so a
	// stalled SMTP server fails the operation instead of hanging it.
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	timeout := time.NewTimer(p.config.SendTimeout)
	defer timeout.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-timeout.C:
		return fmt.Errorf("smtp send: timed out after %s", p.config.SendTimeout)
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func (p *SMTPProvider) SendOfferVerification(ctx context.Context, to, verifyURL string) error {
	body, err := renderVerificationEmail(verifyURL)
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	return p.Send(ctx, &Message{
		To:       to,
		Subject:  "Verify Your GooseDoor Review",
		HTMLBody: body,
	})
}
