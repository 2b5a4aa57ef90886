package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"parley/internal/ai"
	"parley/internal/model"
)

// ErrUnsupportedModel 未配置的模型名称
var ErrUnsupportedModel = errors.New("unsupported model")

// TextGenerator 文本生成能力 (ai.Generator)
type TextGenerator interface {
	GenerateText(ctx context.Context, modelPath, prompt string, opts ...ai.GenerateOption) (string, error)
}

// QueryInput 生成请求
type QueryInput struct {
	ModelName string
	Message   string
	History   []model.Message // 按时间顺序的历史消息
	MaxLength int             // 0 表示使用服务默认值
}

// QueryService 查询服务
// 职责: 解析模型名称，拼接 prompt，调用文本生成器
type QueryService struct {
	generator TextGenerator
	models    map[string]string
	maxLength int
}

// NewQueryService 创建查询服务
// models: 模型名称 -> 推理模型路径；maxLength <= 0 时使用 ai.DefaultMaxLength
func NewQueryService(generator TextGenerator, models map[string]string, maxLength int) *QueryService {
	if maxLength <= 0 {
		maxLength = ai.DefaultMaxLength
	}
	return &QueryService{
		generator: generator,
		models:    models,
		maxLength: maxLength,
	}
}

// ModelPath 解析模型名称
func (s *QueryService) ModelPath(name string) (string, error) {
	path, ok := s.models[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedModel, name)
	}
	return path, nil
}

// ModelNames 返回已配置的模型名称（有序）
func (s *QueryService) ModelNames() []string {
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query 生成回复
// prompt 由历史消息内容和新消息按顺序拼接而成；生成错误原样返回
func (s *QueryService) Query(ctx context.Context, in *QueryInput) (string, error) {
	modelPath, err := s.ModelPath(in.ModelName)
	if err != nil {
		return "", err
	}

	messages := make([]string, 0, len(in.History)+1)
	for _, m := range in.History {
		messages = append(messages, m.Content)
	}
	messages = append(messages, in.Message)
	prompt := ai.BuildPrompt(messages)

	maxLength := in.MaxLength
	if maxLength <= 0 {
		maxLength = s.maxLength
	}

	logger := log.With().Str("model", in.ModelName).Str("model_path", modelPath).Logger()

	text, err := s.generator.GenerateText(ctx, modelPath, prompt, ai.WithMaxLength(maxLength))
	if err != nil {
		logger.Error().Err(err).Msg("text generation failed")
		return "", err
	}

	logger.Debug().
		Int("history", len(in.History)).
		Int("max_length", maxLength).
		Int("response_len", len(text)).
		Msg("text generated")

	return text, nil
}
