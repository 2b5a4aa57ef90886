package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Models  []ModelConfig `mapstructure:"models"`
	Log     LogConfig     `mapstructure:"log"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"` // 为空时不启用跨域
}

// AIConfig 推理服务配置
type AIConfig struct {
	Provider  string         `mapstructure:"provider"` // replicate, openai, azure, ark, volcengine
	APIKey    string         `mapstructure:"api_key"`
	Model     string         `mapstructure:"model"` // 非 replicate 后端的默认模型
	BaseURL   string         `mapstructure:"base_url"`
	MaxLength int            `mapstructure:"max_length"`
	Sampling  SamplingConfig `mapstructure:"sampling"`
}

// SamplingConfig 采样参数，生成器创建后不可变
type SamplingConfig struct {
	Temperature       float64 `mapstructure:"temperature"`
	TopP              float64 `mapstructure:"top_p"`
	RepetitionPenalty float64 `mapstructure:"repetition_penalty"`
}

// ModelConfig 对外模型名称与推理模型路径
// 使用列表而非 map，viper 会把 map 的 key 转成小写
type ModelConfig struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 认证配置，JWTSecret 为空时不启用认证
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

var validProviders = map[string]bool{
	"replicate":  true,
	"openai":     true,
	"azure":      true,
	"ark":        true,
	"volcengine": true,
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}
	if c.AI.MaxLength <= 0 {
		return errors.New("ai.max_length must be positive")
	}
	if c.AI.Sampling.Temperature < 0 || c.AI.Sampling.TopP <= 0 || c.AI.Sampling.TopP > 1 {
		return errors.New("invalid sampling parameters")
	}
	if c.AI.Sampling.RepetitionPenalty <= 0 {
		return errors.New("ai.sampling.repetition_penalty must be positive")
	}

	if len(c.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.Name == "" || m.Path == "" {
			return fmt.Errorf("invalid model mapping %q -> %q", m.Name, m.Path)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate model name %q", m.Name)
		}
		seen[m.Name] = true
	}

	return nil
}

// ModelPaths 返回模型名称 -> 推理模型路径
func (c *Config) ModelPaths() map[string]string {
	paths := make(map[string]string, len(c.Models))
	for _, m := range c.Models {
		paths[m.Name] = m.Path
	}
	return paths
}
