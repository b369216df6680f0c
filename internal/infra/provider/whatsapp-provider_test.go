package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"whatsapp-agent/internal/domain/dto"
	"whatsapp-agent/internal/infra/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(context.Background(), true)
}

func newTestProvider(serverURL string) *GraphWhatsAppProvider {
	return NewGraphWhatsAppProvider(testLogger(), &http.Client{}, serverURL, "v21.0", "123456789", "test-token")
}

func TestSendTextMessage(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload dto.TextMessagePayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"messages":[{"id":"wamid.out"}]}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	err := provider.SendTextMessage(context.Background(), "5511999998888", "Hi! How can I help?")
	require.NoError(t, err)

	require.Equal(t, "/v21.0/123456789/messages", gotPath)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "whatsapp", gotPayload.MessagingProduct)
	require.Equal(t, "individual", gotPayload.RecipientType)
	require.Equal(t, "5511999998888", gotPayload.To)
	require.Equal(t, "text", gotPayload.Type)
	require.Equal(t, "Hi! How can I help?", gotPayload.Text.Body)
}

func TestSendTextMessage_EmptyArguments(t *testing.T) {
	provider := newTestProvider("http://unused")

	require.Error(t, provider.SendTextMessage(context.Background(), "", "hello"))
	require.Error(t, provider.SendTextMessage(context.Background(), "5511999998888", ""))
}

func TestSendTextMessage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	err := provider.SendTextMessage(context.Background(), "5511999998888", "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected HTTP status")
}

func TestMarkMessageRead(t *testing.T) {
	var gotPayload dto.ReadReceiptPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	err := provider.MarkMessageRead(context.Background(), "wamid.inbound")
	require.NoError(t, err)

	require.Equal(t, "whatsapp", gotPayload.MessagingProduct)
	require.Equal(t, "read", gotPayload.Status)
	require.Equal(t, "wamid.inbound", gotPayload.MessageID)
	require.NotNil(t, gotPayload.TypingIndicator)
	require.Equal(t, "text", gotPayload.TypingIndicator.Type)
}

func TestMarkMessageRead_EmptyMessageID(t *testing.T) {
	provider := newTestProvider("http://unused")
	require.Error(t, provider.MarkMessageRead(context.Background(), ""))
}
