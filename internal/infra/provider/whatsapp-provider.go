package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"whatsapp-agent/internal/domain/dto"
	"whatsapp-agent/internal/infra/logger"
)

// GraphWhatsAppProvider sends messages through the WhatsApp Cloud API
// (Meta Graph). All requests target /{version}/{phone_number_id}/messages.
type GraphWhatsAppProvider struct {
	Logger        *logger.Logger
	HttpClient    *http.Client
	BaseURL       string
	Version       string
	PhoneNumberID string
	AccessToken   string
}

func NewGraphWhatsAppProvider(logger *logger.Logger, httpClient *http.Client, baseURL, version, phoneNumberID, accessToken string) *GraphWhatsAppProvider {
	return &GraphWhatsAppProvider{
		Logger:        logger,
		HttpClient:    httpClient,
		BaseURL:       baseURL,
		Version:       version,
		PhoneNumberID: phoneNumberID,
		AccessToken:   accessToken,
	}
}

func (p *GraphWhatsAppProvider) messagesURL() string {
	return fmt.Sprintf("%s/%s/%s/messages", p.BaseURL, p.Version, p.PhoneNumberID)
}

// SendTextMessage sends a text message to a recipient's WhatsApp number.
//
// Parameters:
//   - to: string - The recipient's phone number in international format (including the country code).
//   - message: string - The content of the text message to be sent.
//
// Returns:
//   - error: Returns an error if payload construction, the HTTP request, or
//     the API response fails. A failure here must be surfaced to the caller.
func (p *GraphWhatsAppProvider) SendTextMessage(ctx context.Context, to, message string) error {
	if to == "" || message == "" {
		return fmt.Errorf("recipient (to) and message cannot be empty")
	}

	payloadData := dto.TextMessagePayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text: dto.TextMessageBody{
			PreviewURL: false,
			Body:       message,
		},
	}

	body, err := p.post(ctx, payloadData)
	if err != nil {
		return err
	}

	p.Logger.Info(fmt.Sprintf("WhatsApp message sent successfully response_body %s", string(body)))
	return nil
}

// MarkMessageRead marks an inbound message as read and shows a typing
// indicator while the reply is being generated. Callers treat a failure here
// as best-effort and only log it.
func (p *GraphWhatsAppProvider) MarkMessageRead(ctx context.Context, messageID string) error {
	if messageID == "" {
		return fmt.Errorf("messageID cannot be empty")
	}

	payloadData := dto.ReadReceiptPayload{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
		TypingIndicator:  &dto.TypingIndicator{Type: "text"},
	}

	if _, err := p.post(ctx, payloadData); err != nil {
		return err
	}
	return nil
}

func (p *GraphWhatsAppProvider) post(ctx context.Context, payloadData any) ([]byte, error) {
	payload, err := json.Marshal(payloadData)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to marshal payload %v", err))
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.messagesURL(), bytes.NewReader(payload))
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.AccessToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := p.HttpClient.Do(req)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("HTTP request failed %v", err))
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to read response body %v", err))
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		p.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return nil, fmt.Errorf("unexpected HTTP status: %s", res.Status)
	}

	return body, nil
}
