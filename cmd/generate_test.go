package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"parley/internal/ai"
	"parley/internal/config"
)

type recordingPredictor struct {
	modelPath string
	input     *ai.PredictionInput
	err       error
}

func (p *recordingPredictor) Predict(_ context.Context, modelPath string, in *ai.PredictionInput) ([]string, error) {
	p.modelPath = modelPath
	p.input = in
	if p.err != nil {
		return nil, p.err
	}
	return []string{"Paris", " is the capital."}, nil
}

func TestGenerate(t *testing.T) {
	Convey("generate 命令", t, func() {
		ctx := context.Background()
		cfg := &config.Config{
			AI: config.AIConfig{MaxLength: 64},
			Models: []config.ModelConfig{
				{Name: "Llama2", Path: "meta/llama-2-70b-chat"},
			},
		}
		p := &recordingPredictor{}
		gen := ai.NewGenerator(p, nil)
		var out bytes.Buffer

		Convey("参数按换行拼成 prompt 并输出结果", func() {
			err := generate(ctx, &out, cfg, gen, "Llama2", 0, []string{"You are helpful.", "Capital of France?"})
			So(err, ShouldBeNil)
			So(out.String(), ShouldEqual, "Paris is the capital.\n")
			So(p.modelPath, ShouldEqual, "meta/llama-2-70b-chat")
			So(p.input.Prompt, ShouldEqual, "You are helpful.\nCapital of France?")
		})

		Convey("未指定 max-length 时使用配置值", func() {
			So(generate(ctx, &out, cfg, gen, "Llama2", 0, []string{"hi"}), ShouldBeNil)
			So(p.input.MaxLength, ShouldEqual, 64)
		})

		Convey("指定 max-length 时优先", func() {
			So(generate(ctx, &out, cfg, gen, "Llama2", 12, []string{"hi"}), ShouldBeNil)
			So(p.input.MaxLength, ShouldEqual, 12)
		})

		Convey("未知模型不调用后端", func() {
			err := generate(ctx, &out, cfg, gen, "GPT5", 0, []string{"hi"})
			So(err, ShouldNotBeNil)
			So(p.input, ShouldBeNil)
		})

		Convey("后端错误原样返回", func() {
			p.err = errors.New("replicate: 502")
			err := generate(ctx, &out, cfg, gen, "Llama2", 0, []string{"hi"})
			So(err, ShouldEqual, p.err)
			So(out.Len(), ShouldEqual, 0)
		})
	})
}
