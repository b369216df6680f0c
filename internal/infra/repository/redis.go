package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"whatsapp-agent/internal/domain/entities"
)

type RedisHistoryRepository struct {
	client *redis.Client
}

func NewRedisHistoryRepository(client *redis.Client) *RedisHistoryRepository {
	return &RedisHistoryRepository{client: client}
}

func conversationKey(userKey string) string {
	return fmt.Sprintf("conversation:%s", userKey)
}

func (r *RedisHistoryRepository) Find(ctx context.Context, userKey string) (entities.Conversation, error) {
	raw, err := r.client.Get(ctx, conversationKey(userKey)).Result()
	if errors.Is(err, redis.Nil) {
		return entities.Conversation{UserKey: userKey}, nil
	}
	if err != nil {
		return entities.Conversation{}, err
	}

	var conversation entities.Conversation
	if err := json.Unmarshal([]byte(raw), &conversation); err != nil {
		return entities.Conversation{}, fmt.Errorf("failed to unmarshal conversation %s: %w", userKey, err)
	}
	return conversation, nil
}

func (r *RedisHistoryRepository) Save(ctx context.Context, userKey string, conversation entities.Conversation) error {
	conversation.UserKey = userKey
	raw, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation %s: %w", userKey, err)
	}
	return r.client.Set(ctx, conversationKey(userKey), raw, 0).Err()
}

func (r *RedisHistoryRepository) Delete(ctx context.Context, userKey string) error {
	return r.client.Del(ctx, conversationKey(userKey)).Err()
}
