package ark

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"parley/internal/config"
)

func TestNewClient(t *testing.T) {
	Convey("NewClient", t, func() {
		Convey("缺少 API key 时报错", func() {
			c, err := NewClient(&config.AIConfig{Provider: "volcengine"})
			So(err, ShouldNotBeNil)
			So(c, ShouldBeNil)
		})

		Convey("未配置模型时使用默认模型", func() {
			c, err := NewClient(&config.AIConfig{Provider: "volcengine", APIKey: "key"})
			So(err, ShouldBeNil)
			So(c.model, ShouldEqual, DefaultModel)
		})
	})
}

func TestClient_CreateCompletion(t *testing.T) {
	Convey("Client.CreateCompletion", t, func() {
		var got *model.ChatCompletionRequest
		c := &Client{
			model: DefaultModel,
			complete: func(_ context.Context, req *model.ChatCompletionRequest) (model.ChatCompletionResponse, error) {
				got = req
				return model.ChatCompletionResponse{ID: "cmpl-1"}, nil
			},
		}

		Convey("请求参数映射到 SDK 请求", func() {
			resp, err := c.CreateCompletion(context.Background(), &CompletionRequest{
				Prompt:      "hello",
				MaxTokens:   100,
				Temperature: 0.1,
				TopP:        0.9,
			})
			So(err, ShouldBeNil)
			So(resp.ID, ShouldEqual, "cmpl-1")
			So(resp.Contents, ShouldBeEmpty)

			So(got.Model, ShouldEqual, DefaultModel)
			So(got.MaxTokens, ShouldEqual, 100)
			So(got.Temperature, ShouldAlmostEqual, 0.1, 1e-6)
			So(got.TopP, ShouldAlmostEqual, 0.9, 1e-6)
			So(len(got.Messages), ShouldEqual, 1)
			So(*got.Messages[0].Content.StringValue, ShouldEqual, "hello")
		})

		Convey("指定模型时覆盖默认模型", func() {
			_, err := c.CreateCompletion(context.Background(), &CompletionRequest{Model: "doubao-pro", Prompt: "x"})
			So(err, ShouldBeNil)
			So(got.Model, ShouldEqual, "doubao-pro")
		})

		Convey("SDK 错误原样返回", func() {
			wantErr := errors.New("quota exceeded")
			c.complete = func(context.Context, *model.ChatCompletionRequest) (model.ChatCompletionResponse, error) {
				return model.ChatCompletionResponse{}, wantErr
			}
			_, err := c.CreateCompletion(context.Background(), &CompletionRequest{Prompt: "x"})
			So(err, ShouldEqual, wantErr)
		})
	})
}
