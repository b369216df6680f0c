package dto

// TextMessagePayload is the Graph API request body for sending a text message.
type TextMessagePayload struct {
	MessagingProduct string          `json:"messaging_product"`
	RecipientType    string          `json:"recipient_type"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Text             TextMessageBody `json:"text"`
}

type TextMessageBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

// ReadReceiptPayload marks an inbound message as read. The typing indicator
// is optional and tells the user a reply is being prepared.
type ReadReceiptPayload struct {
	MessagingProduct string           `json:"messaging_product"`
	Status           string           `json:"status"`
	MessageID        string           `json:"message_id"`
	TypingIndicator  *TypingIndicator `json:"typing_indicator,omitempty"`
}

type TypingIndicator struct {
	Type string `json:"type"`
}
