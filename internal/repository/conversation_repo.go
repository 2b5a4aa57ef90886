package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parley/internal/model"
)

var (
	ErrNotFound  = errors.New("conversation not found")
	ErrDuplicate = errors.New("conversation already exists")
)

// ListFilter 列表查询条件，Limit 为 0 表示不限制
type ListFilter struct {
	UserID string
	Limit  int64
	Offset int64
}

// ConversationRepository 对话存储
type ConversationRepository interface {
	Create(ctx context.Context, conv *model.Conversation) error
	FindByConversationID(ctx context.Context, conversationID string) (*model.Conversation, error)
	AppendMessages(ctx context.Context, conversationID string, msgs ...model.Message) (*model.Conversation, error)
	List(ctx context.Context, filter ListFilter) ([]*model.Conversation, error)
	Delete(ctx context.Context, conversationID string) error
}

// ConversationRepo MongoDB 对话仓库
type ConversationRepo struct {
	collection *mongo.Collection
}

var _ ConversationRepository = (*ConversationRepo)(nil)

// NewConversationRepo 创建对话仓库
func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	return &ConversationRepo{
		collection: db.Collection((&model.Conversation{}).Collection()),
	}
}

// Create 创建对话
func (r *ConversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	now := time.Now()
	if conv.Timestamp.IsZero() {
		conv.Timestamp = now
	}
	conv.UpdatedAt = now
	if conv.Messages == nil {
		conv.Messages = []model.Message{}
	}

	result, err := r.collection.InsertOne(ctx, conv)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		conv.ID = oid
	}
	return nil
}

// FindByConversationID 根据对话 ID 查询
func (r *ConversationRepo) FindByConversationID(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.collection.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// AppendMessages 原子追加消息并返回更新后的对话
func (r *ConversationRepo) AppendMessages(ctx context.Context, conversationID string, msgs ...model.Message) (*model.Conversation, error) {
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": msgs}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conv model.Conversation
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"conversation_id": conversationID}, update, opts).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// List 查询对话列表，按创建时间倒序
func (r *ConversationRepo) List(ctx context.Context, filter ListFilter) ([]*model.Conversation, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "timestamp", Value: -1}}).
		SetSkip(filter.Offset)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	convs := []*model.Conversation{}
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// Delete 删除对话
func (r *ConversationRepo) Delete(ctx context.Context, conversationID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"conversation_id": conversationID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
