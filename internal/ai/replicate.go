package ai

import (
	"context"
	"fmt"

	"github.com/replicate/replicate-go"
)

// runFunc 执行一次 replicate 预测并等待结果
type runFunc func(ctx context.Context, identifier string, input replicate.PredictionInput) (replicate.PredictionOutput, error)

// ReplicatePredictor 基于 Replicate 托管推理服务的 Predictor
// modelPath 形如 owner/name 或 owner/name:version
type ReplicatePredictor struct {
	run runFunc
}

// NewReplicatePredictor 创建 Replicate Predictor
// apiKey 为空时从 REPLICATE_API_TOKEN 环境变量读取
func NewReplicatePredictor(apiKey, baseURL string) (*ReplicatePredictor, error) {
	opts := []replicate.ClientOption{replicate.WithTokenFromEnv()}
	if apiKey != "" {
		opts = []replicate.ClientOption{replicate.WithToken(apiKey)}
	}
	if baseURL != "" {
		opts = append(opts, replicate.WithBaseURL(baseURL))
	}

	client, err := replicate.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create replicate client: %w", err)
	}

	return &ReplicatePredictor{
		run: func(ctx context.Context, identifier string, input replicate.PredictionInput) (replicate.PredictionOutput, error) {
			return client.Run(ctx, identifier, input, nil)
		},
	}, nil
}

// Predict 实现 Predictor
func (p *ReplicatePredictor) Predict(ctx context.Context, modelPath string, in *PredictionInput) ([]string, error) {
	output, err := p.run(ctx, modelPath, replicate.PredictionInput(in.Map()))
	if err != nil {
		return nil, err
	}
	return flattenOutput(output), nil
}

// flattenOutput 将预测输出展开为字符串片段
// 语言模型通常返回 token 数组，部分模型直接返回完整字符串
func flattenOutput(output replicate.PredictionOutput) []string {
	switch v := output.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		fragments := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case nil:
			case string:
				fragments = append(fragments, s)
			default:
				fragments = append(fragments, fmt.Sprint(s))
			}
		}
		return fragments
	default:
		return []string{fmt.Sprint(v)}
	}
}
