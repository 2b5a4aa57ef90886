package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/replicate/replicate-go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFlattenOutput(t *testing.T) {
	Convey("flattenOutput 展开预测输出", t, func() {
		Convey("nil 输出", func() {
			So(flattenOutput(nil), ShouldBeEmpty)
		})

		Convey("token 数组", func() {
			out := []any{"The ", "answer ", "is 42."}
			So(flattenOutput(out), ShouldResemble, []string{"The ", "answer ", "is 42."})
		})

		Convey("数组中的 nil 被跳过，非字符串转为文本", func() {
			out := []any{"a", nil, 1, "b"}
			So(flattenOutput(out), ShouldResemble, []string{"a", "1", "b"})
		})

		Convey("单个字符串", func() {
			So(flattenOutput("whole text"), ShouldResemble, []string{"whole text"})
		})

		Convey("字符串切片", func() {
			So(flattenOutput([]string{"x", "y"}), ShouldResemble, []string{"x", "y"})
		})
	})
}

func TestReplicatePredictor_Predict(t *testing.T) {
	Convey("ReplicatePredictor.Predict", t, func() {
		var gotID string
		var gotInput replicate.PredictionInput
		p := &ReplicatePredictor{
			run: func(_ context.Context, identifier string, input replicate.PredictionInput) (replicate.PredictionOutput, error) {
				gotID = identifier
				gotInput = input
				return []any{"Hello", ", ", "world"}, nil
			},
		}

		in := &PredictionInput{Prompt: "hi", Temperature: 0.1, TopP: 0.9, MaxLength: 100, RepetitionPenalty: 1}
		fragments, err := p.Predict(context.Background(), "meta/llama-2-70b-chat", in)
		So(err, ShouldBeNil)
		So(fragments, ShouldResemble, []string{"Hello", ", ", "world"})
		So(gotID, ShouldEqual, "meta/llama-2-70b-chat")
		So(gotInput["prompt"], ShouldEqual, "hi")
		So(gotInput["top_p"], ShouldEqual, 0.9)
		So(gotInput["max_length"], ShouldEqual, 100)

		Convey("错误原样返回", func() {
			wantErr := errors.New("model not found")
			p.run = func(context.Context, string, replicate.PredictionInput) (replicate.PredictionOutput, error) {
				return nil, wantErr
			}
			_, err := p.Predict(context.Background(), "bad/model", in)
			So(err, ShouldEqual, wantErr)
		})

		Convey("与 Generator 组合", func() {
			text, err := NewGenerator(p, nil).GenerateText(context.Background(), "meta/llama-2-70b-chat", "hi")
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Hello, world")
		})
	})
}
