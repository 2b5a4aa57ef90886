package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeChatModel 按预设片段流式返回
type fakeChatModel struct {
	chunks    []string
	streamErr error
	recvErr   error
	input     []*schema.Message
	options   *model.Options
}

func (m *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return nil, errors.New("not used")
}

func (m *fakeChatModel) Stream(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.input = input
	m.options = model.GetCommonOptions(&model.Options{}, opts...)
	if m.streamErr != nil {
		return nil, m.streamErr
	}

	sr, sw := schema.Pipe[*schema.Message](len(m.chunks) + 1)
	go func() {
		defer sw.Close()
		for _, c := range m.chunks {
			sw.Send(schema.AssistantMessage(c, nil), nil)
		}
		if m.recvErr != nil {
			sw.Send(nil, m.recvErr)
		}
	}()
	return sr, nil
}

func TestEinoPredictor_Predict(t *testing.T) {
	Convey("EinoPredictor.Predict", t, func() {
		ctx := context.Background()
		in := &PredictionInput{Prompt: "question", Temperature: 0.1, TopP: 0.9, MaxLength: 100, RepetitionPenalty: 1}

		Convey("收集流式片段并跳过空片段", func() {
			cm := &fakeChatModel{chunks: []string{"The ", "", "answer ", "is 42."}}
			fragments, err := NewEinoPredictor(cm).Predict(ctx, "gpt-4o-mini", in)
			So(err, ShouldBeNil)
			So(fragments, ShouldResemble, []string{"The ", "answer ", "is 42."})

			So(len(cm.input), ShouldEqual, 1)
			So(cm.input[0].Role, ShouldEqual, schema.User)
			So(cm.input[0].Content, ShouldEqual, "question")
		})

		Convey("采样参数通过 model.Option 下发", func() {
			cm := &fakeChatModel{}
			_, err := NewEinoPredictor(cm).Predict(ctx, "gpt-4o-mini", in)
			So(err, ShouldBeNil)
			So(*cm.options.Temperature, ShouldAlmostEqual, 0.1, 1e-6)
			So(*cm.options.TopP, ShouldAlmostEqual, 0.9, 1e-6)
			So(*cm.options.MaxTokens, ShouldEqual, 100)
			So(*cm.options.Model, ShouldEqual, "gpt-4o-mini")
		})

		Convey("modelPath 为空时不覆盖模型", func() {
			cm := &fakeChatModel{}
			_, err := NewEinoPredictor(cm).Predict(ctx, "", in)
			So(err, ShouldBeNil)
			So(cm.options.Model, ShouldBeNil)
		})

		Convey("建立流失败时错误原样返回", func() {
			wantErr := errors.New("invalid api key")
			_, err := NewEinoPredictor(&fakeChatModel{streamErr: wantErr}).Predict(ctx, "m", in)
			So(err, ShouldEqual, wantErr)
		})

		Convey("读取流失败时错误原样返回", func() {
			wantErr := errors.New("connection reset")
			cm := &fakeChatModel{chunks: []string{"partial"}, recvErr: wantErr}
			fragments, err := NewEinoPredictor(cm).Predict(ctx, "m", in)
			So(err, ShouldEqual, wantErr)
			So(fragments, ShouldBeNil)
		})

		Convey("与 Generator 组合", func() {
			cm := &fakeChatModel{chunks: []string{"Hello", " there"}}
			text, err := NewGenerator(NewEinoPredictor(cm), nil).GenerateText(ctx, "m", "hi")
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Hello there")
		})
	})
}
