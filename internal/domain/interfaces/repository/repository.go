package repository

import (
	"context"

	"whatsapp-agent/internal/domain/entities"
)

// HistoryRepository persists one conversation record per user key. Find on a
// key that was never written returns an empty conversation, not an error.
// Mutations are whole-record: load, modify, save.
type HistoryRepository interface {
	Find(ctx context.Context, userKey string) (entities.Conversation, error)
	Save(ctx context.Context, userKey string, conversation entities.Conversation) error
	Delete(ctx context.Context, userKey string) error
}
