package ark

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"parley/internal/config"
)

const (
	DefaultBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	DefaultModel   = "doubao-seed-1-6-flash-250615"
)

type completeFunc func(ctx context.Context, req *model.ChatCompletionRequest) (model.ChatCompletionResponse, error)

// Client Ark 客户端封装
// 用于调用火山引擎的 Ark API，使用官方 volcengine-go-sdk
type Client struct {
	complete completeFunc
	model    string
}

// NewClient 创建 Ark 客户端
func NewClient(cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ark API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	arkClient := arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(baseURL))

	return &Client{
		complete: func(ctx context.Context, req *model.ChatCompletionRequest) (model.ChatCompletionResponse, error) {
			return arkClient.CreateChatCompletion(ctx, req)
		},
		model: modelName,
	}, nil
}

// CompletionRequest 单轮补全请求
type CompletionRequest struct {
	Model       string  // 为空时使用客户端默认模型
	Prompt      string  // 用户输入
	MaxTokens   int     // 最大 token 数
	Temperature float64 // 温度参数
	TopP        float64 // TopP 参数
}

// CompletionResponse 补全结果
type CompletionResponse struct {
	ID       string
	Contents []string // 按 choice 顺序排列的文本
	Usage    Usage
}

// Usage Token 使用统计
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CreateCompletion 发起一次单轮对话补全
// SDK 返回的错误原样返回
func (c *Client) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.model
	}

	prompt := req.Prompt
	input := &model.ChatCompletionRequest{
		Model: modelName,
		Messages: []*model.ChatCompletionMessage{
			{
				Role:    "user",
				Content: &model.ChatCompletionMessageContent{StringValue: &prompt},
			},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
	}

	output, err := c.complete(ctx, input)
	if err != nil {
		log.Debug().Err(err).Str("model", modelName).Msg("ark chat completion failed")
		return nil, err
	}

	return convertResponse(&output), nil
}

// convertResponse 转换响应格式
func convertResponse(output *model.ChatCompletionResponse) *CompletionResponse {
	resp := &CompletionResponse{
		ID:       output.ID,
		Contents: make([]string, 0, len(output.Choices)),
		Usage: Usage{
			PromptTokens:     output.Usage.PromptTokens,
			CompletionTokens: output.Usage.CompletionTokens,
			TotalTokens:      output.Usage.TotalTokens,
		},
	}

	for _, choice := range output.Choices {
		if choice.Message.Content == nil || choice.Message.Content.StringValue == nil {
			continue
		}
		resp.Contents = append(resp.Contents, *choice.Message.Content.StringValue)
	}

	return resp
}
