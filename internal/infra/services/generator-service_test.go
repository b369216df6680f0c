package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"whatsapp-agent/internal/domain/entities"
)

func TestBuildMessages_SystemPromptFirstThenHistoryInOrder(t *testing.T) {
	generator := &OpenAIGenerator{Model: "gpt-4o-mini", SystemPrompt: "be helpful"}

	history := []entities.Message{
		{Role: entities.RoleUser, Content: "Hello"},
		{Role: entities.RoleAssistant, Content: "Hi!"},
		{Role: entities.RoleUser, Content: "What's up?"},
	}

	messages := generator.buildMessages(history)

	require.Len(t, messages, 4)
	require.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	require.Equal(t, "be helpful", messages[0].Content)
	require.Equal(t, "Hello", messages[1].Content)
	require.Equal(t, "Hi!", messages[2].Content)
	require.Equal(t, "What's up?", messages[3].Content)
}

func TestGenerate_ReturnsFirstChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi! How can I help?"}}]}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	generator := NewOpenAIGenerator(testLogger(), openai.NewClientWithConfig(cfg), "gpt-4o-mini", "be helpful")

	reply, err := generator.Generate(context.Background(), []entities.Message{
		{Role: entities.RoleUser, Content: "Hello"},
	})
	require.NoError(t, err)
	require.Equal(t, "Hi! How can I help?", reply)
}

func TestGenerate_UpstreamFailureIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	generator := NewOpenAIGenerator(testLogger(), openai.NewClientWithConfig(cfg), "gpt-4o-mini", "be helpful")

	_, err := generator.Generate(context.Background(), []entities.Message{
		{Role: entities.RoleUser, Content: "Hello"},
	})
	require.Error(t, err)
}
