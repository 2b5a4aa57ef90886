package ai

import (
	"context"
	"strings"
)

// DefaultMaxLength 未指定时的最大输出长度
const DefaultMaxLength = 100

// Sampling 采样参数
type Sampling struct {
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
}

// DefaultSampling 返回默认采样参数: temperature=0.1, top_p=0.9, repetition_penalty=1.0
func DefaultSampling() Sampling {
	return Sampling{
		Temperature:       0.1,
		TopP:              0.9,
		RepetitionPenalty: 1.0,
	}
}

// PredictionInput 一次远程推理请求
type PredictionInput struct {
	Prompt            string
	Temperature       float64
	TopP              float64
	MaxLength         int
	RepetitionPenalty float64
}

// Map 转换为推理服务的 input 结构
func (in *PredictionInput) Map() map[string]any {
	return map[string]any{
		"prompt":             in.Prompt,
		"temperature":        in.Temperature,
		"top_p":              in.TopP,
		"max_length":         in.MaxLength,
		"repetition_penalty": in.RepetitionPenalty,
	}
}

// Predictor 远程推理能力，返回有序的输出片段
type Predictor interface {
	Predict(ctx context.Context, modelPath string, in *PredictionInput) ([]string, error)
}

// Generator 文本生成器
// 职责: 将生成参数映射为一次远程推理调用，并拼接输出片段
type Generator struct {
	predictor Predictor
	sampling  Sampling
}

// NewGenerator 创建文本生成器，sampling 为 nil 时使用默认采样参数
func NewGenerator(predictor Predictor, sampling *Sampling) *Generator {
	s := DefaultSampling()
	if sampling != nil {
		s = *sampling
	}
	return &Generator{
		predictor: predictor,
		sampling:  s,
	}
}

// Sampling 返回生成器使用的采样参数
func (g *Generator) Sampling() Sampling {
	return g.sampling
}

type generateOptions struct {
	maxLength int
}

// GenerateOption GenerateText 的可选参数
type GenerateOption func(*generateOptions)

// WithMaxLength 设置最大输出长度
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) {
		o.maxLength = n
	}
}

// GenerateText 调用远程模型生成文本
// 推理服务返回的错误原样返回，不包装、不重试
func (g *Generator) GenerateText(ctx context.Context, modelPath, prompt string, opts ...GenerateOption) (string, error) {
	o := generateOptions{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(&o)
	}

	fragments, err := g.predictor.Predict(ctx, modelPath, &PredictionInput{
		Prompt:            prompt,
		Temperature:       g.sampling.Temperature,
		TopP:              g.sampling.TopP,
		MaxLength:         o.maxLength,
		RepetitionPenalty: g.sampling.RepetitionPenalty,
	})
	if err != nil {
		return "", err
	}

	return strings.Join(fragments, ""), nil
}
