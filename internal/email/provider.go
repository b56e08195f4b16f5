package email

import "context"

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Provider dispatches email out-of-band. Implementations must report
// failure distinctly from success and must not block past their
// configured timeout; no delivery-confirmation callback is assumed.
type Provider interface {
	Send(ctx context.Context, msg *Message) error

	// SendOfferVerification sends the verification link for an offer.
	SendOfferVerification(ctx context.Context, to, verifyURL string) error
}
