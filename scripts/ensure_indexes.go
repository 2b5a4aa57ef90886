package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"parley/internal/config"
	"parley/internal/pkg/logger"
	"parley/internal/pkg/mongodb"
)

// 创建 MongoDB 索引，部署前执行：
//
//	PARLEY_MONGO_URI=mongodb://localhost:27017 go run ./scripts
func main() {
	// 1. 加载配置（与 cmd/root.go 保持一致的搜索路径）
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.parley")

	viper.SetEnvPrefix("PARLEY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("mongo.database", "parley")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "No config file loaded (%v), using environment variables\n", err)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.Mongo.URI == "" {
		log.Fatal().Msg("mongo.uri is not configured (set PARLEY_MONGO_URI)")
	}

	// 2. 连接 MongoDB
	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	// 3. 创建索引
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
}
