package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"whatsapp-agent/internal/domain/entities"
	"whatsapp-agent/internal/infra/logger"
)

// DefaultSystemPrompt is used when SYSTEM_PROMPT is not configured.
const DefaultSystemPrompt = "You are a helpful assistant replying inside a WhatsApp conversation. " +
	"Keep answers short and conversational, and use plain text without markdown formatting."

// OpenAIGenerator produces assistant replies from the conversation history via
// the chat completions API. The system prompt is always sent first, followed
// by the full history in order.
type OpenAIGenerator struct {
	Logger       *logger.Logger
	Client       *openai.Client
	Model        string
	SystemPrompt string
}

func NewOpenAIGenerator(logger *logger.Logger, client *openai.Client, model, systemPrompt string) *OpenAIGenerator {
	return &OpenAIGenerator{
		Logger:       logger,
		Client:       client,
		Model:        model,
		SystemPrompt: systemPrompt,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, history []entities.Message) (string, error) {
	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.Model,
		Messages: g.buildMessages(history),
	})
	if err != nil {
		g.Logger.Error(fmt.Sprintf("Chat completion request failed: %s", err.Error()))
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) buildMessages(history []entities.Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: g.SystemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return messages
}
