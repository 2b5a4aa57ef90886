package ai

import (
	"context"

	"parley/internal/pkg/ark"
)

// VolcenginePredictor 基于火山引擎 Ark SDK 的 Predictor
// 非流式调用，每个 choice 的文本作为一个输出片段
type VolcenginePredictor struct {
	client *ark.Client
}

// NewVolcenginePredictor 创建火山引擎 Predictor
func NewVolcenginePredictor(client *ark.Client) *VolcenginePredictor {
	return &VolcenginePredictor{client: client}
}

// Predict 实现 Predictor
func (p *VolcenginePredictor) Predict(ctx context.Context, modelPath string, in *PredictionInput) ([]string, error) {
	resp, err := p.client.CreateCompletion(ctx, &ark.CompletionRequest{
		Model:       modelPath,
		Prompt:      in.Prompt,
		MaxTokens:   in.MaxLength,
		Temperature: in.Temperature,
		TopP:        in.TopP,
	})
	if err != nil {
		return nil, err
	}
	return resp.Contents, nil
}
