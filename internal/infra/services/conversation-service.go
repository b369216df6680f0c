package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"whatsapp-agent/internal/domain/dto"
	"whatsapp-agent/internal/domain/entities"
	"whatsapp-agent/internal/domain/interfaces/repository"
	Iservices "whatsapp-agent/internal/domain/interfaces/services"
	"whatsapp-agent/internal/infra/logger"
	"whatsapp-agent/internal/infra/provider"
)

const (
	ErrInvalidWebhook  = "Invalid webhook data"
	ErrUnsupportedType = "Unsupported message type"
	ErrSendFailed      = "Failed to send WhatsApp message"

	// UnsupportedTypeNotice is sent back when the inbound message is not text.
	UnsupportedTypeNotice = "Sorry, I can only understand text messages at the moment."

	// GenerationApology replaces the assistant reply when the model call fails.
	// The user is not told generation failed.
	GenerationApology = "Sorry, I'm having trouble coming up with a response right now. Please try again in a moment."
)

// ConversationActor owns the history of exactly one user. Its mutex enforces
// the single-writer-per-key discipline: one ProcessMessage at a time per user,
// while different users proceed in parallel.
type ConversationActor struct {
	Logger    *logger.Logger
	UserKey   string
	History   repository.HistoryRepository
	Generator Iservices.IResponseGenerator
	WhatsApp  provider.IWhatsAppProvider

	mu  sync.Mutex
	now func() time.Time
}

func NewConversationActor(logger *logger.Logger, userKey string, history repository.HistoryRepository, generator Iservices.IResponseGenerator, whatsApp provider.IWhatsAppProvider) *ConversationActor {
	return &ConversationActor{
		Logger:    logger,
		UserKey:   userKey,
		History:   history,
		Generator: generator,
		WhatsApp:  whatsApp,
		now:       time.Now,
	}
}

// ProcessMessage runs one inbound message through the full pipeline:
// validate, read receipt (best-effort), type check, persist the user message,
// generate, persist the assistant message, deliver. The user message is
// persisted before generation so a failed model call still records what the
// user said; the assistant message is persisted before delivery, so a failed
// send leaves a reply in history the user never received.
func (a *ConversationActor) ProcessMessage(ctx context.Context, value *dto.WebhookValue) dto.ProcessResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if value == nil || len(value.Contacts) == 0 || len(value.Messages) == 0 {
		return dto.ProcessResult{Success: false, Error: ErrInvalidWebhook}
	}

	message := value.Messages[len(value.Messages)-1]

	if err := a.WhatsApp.MarkMessageRead(ctx, message.ID); err != nil {
		a.Logger.Warn(fmt.Sprintf("Failed to mark message %s as read: %s", message.ID, err.Error()))
	}

	if message.Type != "text" {
		if err := a.WhatsApp.SendTextMessage(ctx, message.From, UnsupportedTypeNotice); err != nil {
			a.Logger.Error(fmt.Sprintf("Failed to send unsupported-type notice to %s: %s", message.From, err.Error()))
		}
		return dto.ProcessResult{Success: false, Error: ErrUnsupportedType}
	}

	conversation, err := a.History.Find(ctx, a.UserKey)
	if err != nil {
		a.Logger.Error(fmt.Sprintf("Failed to load history for %s: %s", a.UserKey, err.Error()))
		return dto.ProcessResult{Success: false, Error: "Failed to load conversation history"}
	}

	conversation.Append(entities.Message{
		Role:      entities.RoleUser,
		Content:   message.Text.Body,
		Timestamp: a.inboundTime(message.Timestamp),
	})
	if err := a.History.Save(ctx, a.UserKey, conversation); err != nil {
		a.Logger.Error(fmt.Sprintf("Failed to persist user message for %s: %s", a.UserKey, err.Error()))
		return dto.ProcessResult{Success: false, Error: "Failed to save conversation history"}
	}

	response, err := a.Generator.Generate(ctx, conversation.Messages)
	if err != nil {
		a.Logger.Error(fmt.Sprintf("Failed to generate response for %s: %s", a.UserKey, err.Error()))
		response = GenerationApology
	}

	conversation.Append(entities.Message{
		Role:      entities.RoleAssistant,
		Content:   response,
		Timestamp: a.now(),
	})
	if err := a.History.Save(ctx, a.UserKey, conversation); err != nil {
		a.Logger.Error(fmt.Sprintf("Failed to persist assistant message for %s: %s", a.UserKey, err.Error()))
		return dto.ProcessResult{Success: false, Error: "Failed to save conversation history"}
	}

	if err := a.WhatsApp.SendTextMessage(ctx, message.From, response); err != nil {
		a.Logger.Error(fmt.Sprintf("Failed to send WhatsApp message to %s: %s", message.From, err.Error()))
		return dto.ProcessResult{Success: false, Error: ErrSendFailed}
	}

	return dto.ProcessResult{Success: true, Response: response}
}

// ClearHistory deletes all persisted history for this user. Clearing an empty
// history is a no-op.
func (a *ConversationActor) ClearHistory(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.History.Delete(ctx, a.UserKey)
}

// inboundTime parses the provider-supplied unix timestamp; outbound messages
// use local time instead.
func (a *ConversationActor) inboundTime(raw string) time.Time {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return a.now()
	}
	return time.Unix(seconds, 0)
}
