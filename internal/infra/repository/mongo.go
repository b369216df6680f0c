package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"whatsapp-agent/internal/domain/entities"
)

const conversationCollection = "conversations"

type MongoHistoryRepository struct {
	db *mongo.Database
}

func NewMongoHistoryRepository(db *mongo.Database) *MongoHistoryRepository {
	return &MongoHistoryRepository{db: db}
}

// Find loads the single conversation document for userKey. A key that was
// never written yields an empty conversation.
func (r *MongoHistoryRepository) Find(ctx context.Context, userKey string) (entities.Conversation, error) {
	collection := r.db.Collection(conversationCollection)
	filter := bson.M{"user_key": userKey}

	var conversation entities.Conversation
	err := collection.FindOne(ctx, filter).Decode(&conversation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Conversation{UserKey: userKey}, nil
	}
	if err != nil {
		return entities.Conversation{}, err
	}
	return conversation, nil
}

// Save replaces the whole conversation record, creating it if absent.
func (r *MongoHistoryRepository) Save(ctx context.Context, userKey string, conversation entities.Conversation) error {
	collection := r.db.Collection(conversationCollection)
	filter := bson.M{"user_key": userKey}

	conversation.UserKey = userKey
	_, err := collection.ReplaceOne(ctx, filter, conversation, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoHistoryRepository) Delete(ctx context.Context, userKey string) error {
	collection := r.db.Collection(conversationCollection)
	filter := bson.M{"user_key": userKey}
	_, err := collection.DeleteOne(ctx, filter)
	return err
}
