package services

import (
	"context"
	"fmt"
	"sync"

	"whatsapp-agent/internal/domain/dto"
	"whatsapp-agent/internal/domain/interfaces/repository"
	Iservices "whatsapp-agent/internal/domain/interfaces/services"
	"whatsapp-agent/internal/infra/logger"
	"whatsapp-agent/internal/infra/provider"
)

// Dispatcher maps each inbound webhook value to the conversation actor of the
// sending user, creating the actor on first contact. It never touches history
// or the external collaborators itself.
type Dispatcher struct {
	Logger    *logger.Logger
	History   repository.HistoryRepository
	Generator Iservices.IResponseGenerator
	WhatsApp  provider.IWhatsAppProvider

	mu     sync.Mutex
	actors map[string]*ConversationActor
}

func NewDispatcher(logger *logger.Logger, history repository.HistoryRepository, generator Iservices.IResponseGenerator, whatsApp provider.IWhatsAppProvider) *Dispatcher {
	return &Dispatcher{
		Logger:    logger,
		History:   history,
		Generator: generator,
		WhatsApp:  whatsApp,
		actors:    make(map[string]*ConversationActor),
	}
}

// Dispatch routes the value to the owning actor. Payloads without both a
// contact and a message are status deliveries, not message events; they are
// reported with ok=false and no actor is created or touched.
func (d *Dispatcher) Dispatch(ctx context.Context, value *dto.WebhookValue) (dto.ProcessResult, bool) {
	userKey, ok := UserKeyFrom(value)
	if !ok {
		return dto.ProcessResult{}, false
	}

	actor := d.actorFor(userKey)
	return actor.ProcessMessage(ctx, value), true
}

// ClearHistory drops the persisted conversation for userKey through its actor
// so the delete serializes with any in-flight processing.
func (d *Dispatcher) ClearHistory(ctx context.Context, userKey string) error {
	if userKey == "" {
		return fmt.Errorf("userKey cannot be empty")
	}
	return d.actorFor(userKey).ClearHistory(ctx)
}

func (d *Dispatcher) actorFor(userKey string) *ConversationActor {
	d.mu.Lock()
	defer d.mu.Unlock()

	actor, ok := d.actors[userKey]
	if !ok {
		actor = NewConversationActor(d.Logger, userKey, d.History, d.Generator, d.WhatsApp)
		d.actors[userKey] = actor
		d.Logger.Info(fmt.Sprintf("Created conversation actor for user %s", userKey))
	}
	return actor
}

// UserKeyFrom derives the stable user key from the webhook value. The
// WhatsApp ID of the contact is used directly; it is already stable and
// collision-free, so the derivation is the identity. Falls back to the
// sender's phone number when the contact block carries no wa_id.
func UserKeyFrom(value *dto.WebhookValue) (string, bool) {
	if value == nil || len(value.Contacts) == 0 || len(value.Messages) == 0 {
		return "", false
	}

	contact := value.Contacts[len(value.Contacts)-1]
	if contact.WaID != "" {
		return contact.WaID, true
	}

	message := value.Messages[len(value.Messages)-1]
	if message.From != "" {
		return message.From, true
	}
	return "", false
}
