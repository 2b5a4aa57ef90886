package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 7080, Mode: "release"},
		AI: AIConfig{
			Provider:  "replicate",
			MaxLength: 100,
			Sampling:  SamplingConfig{Temperature: 0.1, TopP: 0.9, RepetitionPenalty: 1},
		},
		Models: []ModelConfig{
			{Name: "Llama2", Path: "meta/llama-2-70b-chat"},
			{Name: "Mistral", Path: "mistralai/mistral-7b-instruct-v0.2"},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Config.Validate", t, func() {
		Convey("默认配置合法", func() {
			So(validConfig().Validate(), ShouldBeNil)
		})

		Convey("端口非法", func() {
			cfg := validConfig()
			cfg.Server.Port = 70000
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("模式非法", func() {
			cfg := validConfig()
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("不支持的 provider", func() {
			cfg := validConfig()
			cfg.AI.Provider = "huggingface"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("max_length 必须为正数", func() {
			cfg := validConfig()
			cfg.AI.MaxLength = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("top_p 超出范围", func() {
			cfg := validConfig()
			cfg.AI.Sampling.TopP = 1.5
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("repetition_penalty 必须为正数", func() {
			cfg := validConfig()
			cfg.AI.Sampling.RepetitionPenalty = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("模型列表为空", func() {
			cfg := validConfig()
			cfg.Models = nil
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("模型路径为空", func() {
			cfg := validConfig()
			cfg.Models[1].Path = ""
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("模型名称重复", func() {
			cfg := validConfig()
			cfg.Models[1].Name = "Llama2"
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}

func TestConfig_ModelPaths(t *testing.T) {
	Convey("ModelPaths 保留名称大小写", t, func() {
		paths := validConfig().ModelPaths()
		So(paths, ShouldResemble, map[string]string{
			"Llama2":  "meta/llama-2-70b-chat",
			"Mistral": "mistralai/mistral-7b-instruct-v0.2",
		})
	})
}
