package ai

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// EinoPredictor 基于 Eino ChatModel 的 Predictor
// 以流式方式调用模型，每个流式消息片段作为一个输出片段
type EinoPredictor struct {
	chatModel model.BaseChatModel
}

// NewEinoPredictor 创建 Eino Predictor
func NewEinoPredictor(chatModel model.BaseChatModel) *EinoPredictor {
	return &EinoPredictor{chatModel: chatModel}
}

// Predict 实现 Predictor
// modelPath 非空时覆盖 ChatModel 的默认模型
// ChatModel 没有 repetition_penalty 参数，该值不下发
func (p *EinoPredictor) Predict(ctx context.Context, modelPath string, in *PredictionInput) ([]string, error) {
	opts := []model.Option{
		model.WithTemperature(float32(in.Temperature)),
		model.WithTopP(float32(in.TopP)),
		model.WithMaxTokens(in.MaxLength),
	}
	if modelPath != "" {
		opts = append(opts, model.WithModel(modelPath))
	}

	stream, err := p.chatModel.Stream(ctx, []*schema.Message{schema.UserMessage(in.Prompt)}, opts...)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var fragments []string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if chunk != nil && chunk.Content != "" {
			fragments = append(fragments, chunk.Content)
		}
	}

	return fragments, nil
}
