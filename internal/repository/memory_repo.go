package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"parley/internal/model"
)

// MemoryConversationRepo 进程内对话仓库
// 未配置 MongoDB 时使用，重启后数据丢失
type MemoryConversationRepo struct {
	mu    sync.RWMutex
	convs map[string]*model.Conversation
}

var _ ConversationRepository = (*MemoryConversationRepo)(nil)

// NewMemoryConversationRepo 创建进程内对话仓库
func NewMemoryConversationRepo() *MemoryConversationRepo {
	return &MemoryConversationRepo{
		convs: make(map[string]*model.Conversation),
	}
}

// Create 创建对话
func (r *MemoryConversationRepo) Create(_ context.Context, conv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.convs[conv.ConversationID]; exists {
		return ErrDuplicate
	}

	now := time.Now()
	if conv.Timestamp.IsZero() {
		conv.Timestamp = now
	}
	conv.UpdatedAt = now
	if conv.Messages == nil {
		conv.Messages = []model.Message{}
	}

	r.convs[conv.ConversationID] = clone(conv)
	return nil
}

// FindByConversationID 根据对话 ID 查询
func (r *MemoryConversationRepo) FindByConversationID(_ context.Context, conversationID string) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.convs[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(conv), nil
}

// AppendMessages 追加消息并返回更新后的对话
func (r *MemoryConversationRepo) AppendMessages(_ context.Context, conversationID string, msgs ...model.Message) (*model.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.convs[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	conv.Messages = append(conv.Messages, msgs...)
	conv.UpdatedAt = time.Now()
	return clone(conv), nil
}

// List 查询对话列表，按创建时间倒序
func (r *MemoryConversationRepo) List(_ context.Context, filter ListFilter) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	convs := make([]*model.Conversation, 0, len(r.convs))
	for _, conv := range r.convs {
		if filter.UserID != "" && conv.UserID != filter.UserID {
			continue
		}
		convs = append(convs, clone(conv))
	}

	sort.Slice(convs, func(i, j int) bool {
		if convs[i].Timestamp.Equal(convs[j].Timestamp) {
			return convs[i].ConversationID < convs[j].ConversationID
		}
		return convs[i].Timestamp.After(convs[j].Timestamp)
	})

	if filter.Offset >= int64(len(convs)) {
		return []*model.Conversation{}, nil
	}
	convs = convs[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < int64(len(convs)) {
		convs = convs[:filter.Limit]
	}
	return convs, nil
}

// Delete 删除对话
func (r *MemoryConversationRepo) Delete(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.convs[conversationID]; !ok {
		return ErrNotFound
	}
	delete(r.convs, conversationID)
	return nil
}

func clone(conv *model.Conversation) *model.Conversation {
	cp := *conv
	cp.Messages = append([]model.Message(nil), conv.Messages...)
	if cp.Messages == nil {
		cp.Messages = []model.Message{}
	}
	return &cp
}
