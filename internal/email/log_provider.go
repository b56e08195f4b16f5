package email

import (
	"context"

	"goosedoor_backend/internal/logger"
)

// LogProvider logs messages instead of sending them. Used in
// development when no SMTP host is configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, msg *Message) error {
	logger.CtxInfo(ctx, "email (not sent, log provider)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *LogProvider) SendOfferVerification(ctx context.Context, to, verifyURL string) error {
	logger.CtxInfo(ctx, "verification email (not sent, log provider)", "to", to, "url", verifyURL)
	return nil
}
