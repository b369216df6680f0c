package entities

import "time"

// MaxMessages bounds the per-user history. Once the bound is reached the
// oldest entries are dropped, never the newest.
const MaxMessages = 20

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type Message struct {
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Conversation struct {
	UserKey   string    `json:"user_key" bson:"user_key"`
	Messages  []Message `json:"messages" bson:"messages"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Append adds a message and applies the sliding-window trim so that the
// history never holds more than MaxMessages entries, oldest first.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	if len(c.Messages) > MaxMessages {
		c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
	}
	c.UpdatedAt = msg.Timestamp
}
