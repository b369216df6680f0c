package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"whatsapp-agent/internal/domain/dto"
	Iservices "whatsapp-agent/internal/domain/interfaces/services"
	"whatsapp-agent/internal/infra/logger"
)

type HttpHandlers struct {
	Logger      *logger.Logger
	VerifyToken string
	Dispatcher  Iservices.IDispatcher
}

func NewHttpHandlers(logger *logger.Logger, verifyToken string, dispatcher Iservices.IDispatcher) *HttpHandlers {
	return &HttpHandlers{Logger: logger, VerifyToken: verifyToken, Dispatcher: dispatcher}
}

// Webhook is the unified handler for WhatsApp webhook requests: GET carries
// the Meta verification handshake, POST carries event notifications.
func (th *HttpHandlers) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		th.handleVerification(w, r)
		return
	}

	if r.Method == http.MethodPost {
		th.handleWebhookEvent(w, r)
		return
	}

	http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
}

// handleVerification echoes hub.challenge when hub.mode is "subscribe" and
// hub.verify_token matches the configured secret; anything else is 403.
func (th *HttpHandlers) handleVerification(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode == "subscribe" && token == th.VerifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	http.Error(w, "Forbidden", http.StatusForbidden)
}

// handleWebhookEvent decodes the event and hands it to the dispatcher.
// Meta also delivers status updates on this endpoint; those carry no
// contacts/messages and are acknowledged without touching any conversation.
func (th *HttpHandlers) handleWebhookEvent(w http.ResponseWriter, r *http.Request) {
	var body dto.WebhookPayload

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		th.Logger.Error(fmt.Sprintf("Invalid JSON payload: %s", err.Error()))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	value := lastChangeValue(&body)
	if value == nil {
		th.acknowledge(w)
		return
	}

	result, ok := th.Dispatcher.Dispatch(r.Context(), value)
	if !ok {
		th.Logger.Info("Webhook event carried no message, acknowledged without processing")
		th.acknowledge(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !result.Success {
		th.Logger.Error(fmt.Sprintf("Failed to process webhook event: %s", result.Error))
		w.WriteHeader(http.StatusInternalServerError)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(result)
}

func (th *HttpHandlers) acknowledge(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("EVENT_RECEIVED"))
}

// lastChangeValue walks entry -> changes and returns the value of the most
// recent change, or nil when the payload has none.
func lastChangeValue(body *dto.WebhookPayload) *dto.WebhookValue {
	if len(body.Entry) == 0 {
		return nil
	}
	lastEntry := body.Entry[len(body.Entry)-1]
	if len(lastEntry.Changes) == 0 {
		return nil
	}
	return &lastEntry.Changes[len(lastEntry.Changes)-1].Value
}
