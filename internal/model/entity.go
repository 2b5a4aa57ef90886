package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 消息角色
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// ConversationIDLength 对话 ID 长度
const ConversationIDLength = 9

// Conversation 对话实体
type Conversation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	ModelName      string             `bson:"model_name" json:"model_name"`
	UserID         string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Messages       []Message          `bson:"messages" json:"messages"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Message 消息
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Contents 按顺序返回消息内容
func (c *Conversation) Contents() []string {
	contents := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		contents = append(contents, m.Content)
	}
	return contents
}

// Collection 集合名称
func (c *Conversation) Collection() string {
	return "conversations"
}

// EnsureIndexes 创建和维护索引
func (c *Conversation) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "conversation_id", Value: 1}},
			Options: options.Index().SetName("idx_conversation_id").SetUnique(true),
		},
		{
			Keys:    bson.D{bson.E{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp"),
		},
		{
			Keys:    bson.D{bson.E{Key: "user_id", Value: 1}, bson.E{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_user_timestamp"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
