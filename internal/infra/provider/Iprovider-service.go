package provider

import "context"

// IWhatsAppProvider is the outbound side of the WhatsApp integration.
// SendTextMessage failures are hard failures for the caller; MarkMessageRead
// is best-effort and callers only log its errors.
type IWhatsAppProvider interface {
	SendTextMessage(ctx context.Context, to, message string) error
	MarkMessageRead(ctx context.Context, messageID string) error
}
