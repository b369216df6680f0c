package repository

import (
	"context"
	"sync"

	"whatsapp-agent/internal/domain/entities"
)

// MemoryHistoryRepository keeps conversations in a process-local map. It backs
// tests and local runs where no Mongo or Redis instance is available.
type MemoryHistoryRepository struct {
	mu            sync.Mutex
	conversations map[string]entities.Conversation
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{
		conversations: make(map[string]entities.Conversation),
	}
}

func (r *MemoryHistoryRepository) Find(_ context.Context, userKey string) (entities.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[userKey]
	if !ok {
		return entities.Conversation{UserKey: userKey}, nil
	}
	conversation.Messages = append([]entities.Message(nil), conversation.Messages...)
	return conversation, nil
}

func (r *MemoryHistoryRepository) Save(_ context.Context, userKey string, conversation entities.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation.UserKey = userKey
	conversation.Messages = append([]entities.Message(nil), conversation.Messages...)
	r.conversations[userKey] = conversation
	return nil
}

func (r *MemoryHistoryRepository) Delete(_ context.Context, userKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conversations, userKey)
	return nil
}
