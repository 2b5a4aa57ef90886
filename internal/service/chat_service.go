package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"parley/internal/model"
	"parley/internal/pkg/cache"
	"parley/internal/pkg/ctxutil"
	"parley/internal/pkg/id"
	"parley/internal/repository"
)

// ErrConversationNotFound 对话不存在
var ErrConversationNotFound = errors.New("conversation not found")

const maxCreateAttempts = 3

// ConversationCache 对话读缓存 (cache.ConversationCache)
// Set 不得用旧版本覆盖新版本，Invalidate 之后的短期内忽略回填
type ConversationCache interface {
	Get(ctx context.Context, conversationID string) (*model.Conversation, error)
	Set(ctx context.Context, conv *model.Conversation) error
	Invalidate(ctx context.Context, conversationID string) error
}

// ConversationService 对话服务 - 业务逻辑层
// 职责: 编排查询服务和数据层，实现对话流程
type ConversationService struct {
	repo  repository.ConversationRepository
	cache ConversationCache // 可为 nil
	query *QueryService
}

// NewConversationService 创建对话服务，convCache 为 nil 时直接读仓库
func NewConversationService(repo repository.ConversationRepository, convCache ConversationCache, query *QueryService) *ConversationService {
	return &ConversationService{
		repo:  repo,
		cache: convCache,
		query: query,
	}
}

// Start 创建新对话
func (s *ConversationService) Start(ctx context.Context, modelName string) (*model.Conversation, error) {
	if _, err := s.query.ModelPath(modelName); err != nil {
		return nil, err
	}

	userID, _ := ctxutil.GetUserID(ctx)

	var err error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		conv := &model.Conversation{
			ConversationID: id.Short(model.ConversationIDLength),
			ModelName:      modelName,
			UserID:         userID,
			Messages:       []model.Message{},
		}
		err = s.repo.Create(ctx, conv)
		if err == nil {
			log.Info().
				Str("conversation_id", conv.ConversationID).
				Str("model", modelName).
				Msg("conversation started")
			return conv, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, err
}

// Chat 处理对话请求
// 业务流程: 1. 获取对话 -> 2. 生成回复 -> 3. 追加用户消息和 AI 回复
// 生成失败时对话不变
func (s *ConversationService) Chat(ctx context.Context, modelName, message, conversationID string) (*model.Conversation, error) {
	logger := log.With().Str("conversation_id", conversationID).Logger()

	// 1. 获取对话
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// 2. 调用模型
	reply, err := s.query.Query(ctx, &QueryInput{
		ModelName: modelName,
		Message:   message,
		History:   conv.Messages,
	})
	if err != nil {
		return nil, err
	}

	// 3. 保存消息
	now := time.Now()
	updated, err := s.repo.AppendMessages(ctx, conversationID,
		model.Message{Role: model.RoleUser, Content: message, Timestamp: now},
		model.Message{Role: model.RoleAI, Content: reply, Timestamp: now},
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		logger.Error().Err(err).Msg("failed to save messages")
		return nil, err
	}
	s.fill(ctx, updated)

	logger.Info().Int("messages", len(updated.Messages)).Msg("chat completed")
	return updated, nil
}

// Get 获取对话，优先读缓存
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	if s.cache != nil {
		conv, err := s.cache.Get(ctx, conversationID)
		if err == nil {
			return s.authorize(ctx, conv)
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("conversation_id", conversationID).Msg("conversation cache read failed")
		}
	}

	conv, err := s.repo.FindByConversationID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	s.fill(ctx, conv)
	return s.authorize(ctx, conv)
}

// List 获取对话列表，按创建时间倒序
func (s *ConversationService) List(ctx context.Context) ([]*model.Conversation, error) {
	userID, _ := ctxutil.GetUserID(ctx)
	return s.repo.List(ctx, repository.ListFilter{UserID: userID})
}

// Delete 删除对话
func (s *ConversationService) Delete(ctx context.Context, conversationID string) error {
	if _, err := s.Get(ctx, conversationID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, conversationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	s.invalidate(ctx, conversationID)
	return nil
}

// authorize 已认证用户只能访问自己的对话
func (s *ConversationService) authorize(ctx context.Context, conv *model.Conversation) (*model.Conversation, error) {
	userID, ok := ctxutil.GetUserID(ctx)
	if ok && conv.UserID != "" && conv.UserID != userID {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// fill 写入缓存，缓存中已有更新的版本时不覆盖
func (s *ConversationService) fill(ctx context.Context, conv *model.Conversation) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, conv); err != nil {
		log.Warn().Err(err).Str("conversation_id", conv.ConversationID).Msg("conversation cache write failed")
	}
}

func (s *ConversationService) invalidate(ctx context.Context, conversationID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, conversationID); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("conversation cache invalidate failed")
	}
}
