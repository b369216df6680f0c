package Iservices

import (
	"context"

	"whatsapp-agent/internal/domain/dto"
)

// IDispatcher routes a webhook value to the conversation owned by the sending
// user. The boolean reports whether the payload was a message event at all;
// status-only deliveries return false and are acknowledged without touching
// any conversation.
type IDispatcher interface {
	Dispatch(ctx context.Context, value *dto.WebhookValue) (dto.ProcessResult, bool)
}
