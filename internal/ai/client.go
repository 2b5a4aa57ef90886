package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"parley/internal/ai/component"
	"parley/internal/config"
	"parley/internal/pkg/ark"
	"parley/internal/pkg/metrics"
)

// NewPredictor 按配置创建推理后端
// replicate: Replicate 托管推理 (默认)
// openai / azure / ark: Eino ChatModel 流式调用
// volcengine: 火山引擎 Ark SDK
func NewPredictor(ctx context.Context, cfg *config.AIConfig) (Predictor, error) {
	switch cfg.Provider {
	case "replicate", "":
		if cfg.APIKey == "" {
			log.Debug().Msg("replicate api key not configured, falling back to REPLICATE_API_TOKEN")
		}
		return NewReplicatePredictor(cfg.APIKey, cfg.BaseURL)
	case "openai", "azure", "ark":
		chatModel, err := component.NewChatModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewEinoPredictor(chatModel), nil
	case "volcengine":
		client, err := ark.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewVolcenginePredictor(client), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// NewGeneratorFromConfig 创建推理后端并组装文本生成器，m 为 nil 时不记录指标
func NewGeneratorFromConfig(ctx context.Context, cfg *config.AIConfig, m *metrics.GenerationMetrics) (*Generator, error) {
	predictor, err := NewPredictor(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if m != nil {
		predictor = NewInstrumentedPredictor(predictor, m)
	}

	sampling := Sampling{
		Temperature:       cfg.Sampling.Temperature,
		TopP:              cfg.Sampling.TopP,
		RepetitionPenalty: cfg.Sampling.RepetitionPenalty,
	}
	log.Info().
		Str("provider", cfg.Provider).
		Float64("temperature", sampling.Temperature).
		Float64("top_p", sampling.TopP).
		Float64("repetition_penalty", sampling.RepetitionPenalty).
		Msg("text generator initialized")

	return NewGenerator(predictor, &sampling), nil
}
