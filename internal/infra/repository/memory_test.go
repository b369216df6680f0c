package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"whatsapp-agent/internal/domain/entities"
)

func TestMemoryRepository_FindUnknownKeyIsEmpty(t *testing.T) {
	repo := NewMemoryHistoryRepository()

	conversation, err := repo.Find(context.Background(), "5511999998888")
	require.NoError(t, err)
	require.Equal(t, "5511999998888", conversation.UserKey)
	require.Empty(t, conversation.Messages)
}

func TestMemoryRepository_SaveThenFind(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	conversation := entities.Conversation{UserKey: "5511999998888"}
	conversation.Append(entities.Message{Role: entities.RoleUser, Content: "Hello", Timestamp: time.Unix(100, 0)})
	require.NoError(t, repo.Save(ctx, "5511999998888", conversation))

	loaded, err := repo.Find(ctx, "5511999998888")
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	require.Equal(t, "Hello", loaded.Messages[0].Content)
}

func TestMemoryRepository_FindReturnsCopy(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	conversation := entities.Conversation{UserKey: "u"}
	conversation.Append(entities.Message{Role: entities.RoleUser, Content: "Hello", Timestamp: time.Unix(100, 0)})
	require.NoError(t, repo.Save(ctx, "u", conversation))

	loaded, err := repo.Find(ctx, "u")
	require.NoError(t, err)
	loaded.Messages[0].Content = "mutated"

	again, err := repo.Find(ctx, "u")
	require.NoError(t, err)
	require.Equal(t, "Hello", again.Messages[0].Content)
}

func TestMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	conversation := entities.Conversation{UserKey: "u"}
	conversation.Append(entities.Message{Role: entities.RoleUser, Content: "Hello", Timestamp: time.Unix(100, 0)})
	require.NoError(t, repo.Save(ctx, "u", conversation))

	require.NoError(t, repo.Delete(ctx, "u"))
	require.NoError(t, repo.Delete(ctx, "u"))

	loaded, err := repo.Find(ctx, "u")
	require.NoError(t, err)
	require.Empty(t, loaded.Messages)
}

func TestMemoryRepository_KeysAreIndependent(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	a := entities.Conversation{UserKey: "a"}
	a.Append(entities.Message{Role: entities.RoleUser, Content: "from a", Timestamp: time.Unix(100, 0)})
	require.NoError(t, repo.Save(ctx, "a", a))

	require.NoError(t, repo.Delete(ctx, "b"))

	loaded, err := repo.Find(ctx, "a")
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
}
