package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parley/docs"
	"parley/internal/ai"
	"parley/internal/config"
	"parley/internal/handler"
	"parley/internal/pkg/cache"
	"parley/internal/pkg/jwt"
	"parley/internal/pkg/metrics"
	"parley/internal/pkg/mongodb"
	"parley/internal/repository"
	"parley/internal/server/middleware"
	"parley/internal/service"
)

// Deps 服务器依赖，New 从配置构建，测试中可直接注入
type Deps struct {
	Repo      repository.ConversationRepository
	Cache     service.ConversationCache // 可为 nil
	Generator service.TextGenerator
	Registry  *prometheus.Registry // 为 nil 时不暴露 /metrics
	Checks    map[string]handler.ReadinessCheck
}

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New 根据配置创建服务器实例
// MongoDB 和 Redis 均为可选，连接失败时分别回退到内存仓库和无缓存
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	deps := Deps{Checks: map[string]handler.ReadinessCheck{}}

	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, using in-memory conversation store")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(ctx, mongoClient.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
			deps.Repo = repository.NewConversationRepo(mongoClient.Database())
			deps.Checks["mongo"] = mongoClient.Ping
		}
	}
	if deps.Repo == nil {
		deps.Repo = repository.NewMemoryConversationRepo()
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		} else {
			redisCache = rc
			deps.Cache = cache.NewConversationCache(rc)
			deps.Checks["redis"] = rc.Ping
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	var genMetrics *metrics.GenerationMetrics
	if cfg.Metrics.Enabled {
		deps.Registry = metrics.Registry
		genMetrics = metrics.NewGenerationMetrics(deps.Registry)
	}

	gen, err := ai.NewGeneratorFromConfig(ctx, &cfg.AI, genMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	deps.Generator = gen

	srv := NewWithDeps(cfg, deps)
	srv.mongo = mongoClient
	srv.redis = redisCache
	return srv, nil
}

// NewWithDeps 使用给定依赖创建服务器
func NewWithDeps(cfg *config.Config, deps Deps) *Server {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
	}
	srv.setupRoutes(deps)
	return srv
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(deps Deps) {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	if len(s.cfg.Server.CORSOrigins) > 0 {
		s.engine.Use(middleware.CORS(s.cfg.Server.CORSOrigins))
	}

	querySvc := service.NewQueryService(deps.Generator, s.cfg.ModelPaths(), s.cfg.AI.MaxLength)
	convSvc := service.NewConversationService(deps.Repo, deps.Cache, querySvc)

	// 健康检查
	healthHdl := handler.NewHealthHandler(deps.Checks)
	s.engine.GET("/health", healthHdl.Health)
	s.engine.GET("/ready", healthHdl.Ready)

	if deps.Registry != nil {
		path := s.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.engine.GET(path, gin.WrapH(metrics.Handler(deps.Registry)))
	}

	// Swagger 文档
	docs.SwaggerInfo.BasePath = "/"
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := s.engine.Group("/api/v1")
	if s.cfg.Auth.JWTSecret != "" {
		v1.Use(middleware.Auth(jwt.NewJWT(s.cfg.Auth.JWTSecret, s.cfg.Auth.AccessTokenExpiry)))
	} else {
		log.Warn().Msg("auth.jwt_secret not configured, API is unauthenticated")
	}
	{
		convHdl := handler.NewConversationHandler(convSvc)
		v1.POST("/conversations/start", convHdl.Start)
		v1.POST("/conversations/chat", convHdl.Chat)
		v1.GET("/conversations", convHdl.List)
		v1.GET("/conversations/:id", convHdl.Get)
		v1.DELETE("/conversations/:id", convHdl.Delete)

		queryHdl := handler.NewQueryHandler(querySvc, convSvc)
		v1.POST("/query", queryHdl.Query)
		v1.GET("/models", queryHdl.Models)
	}
}

// Run 启动服务器，ctx 结束时优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Close(shutdownCtx)
		return err
	case err := <-errCh:
		s.Close(context.Background())
		return err
	}
}

// Close 关闭外部连接
func (s *Server) Close(ctx context.Context) {
	if s.mongo != nil {
		if err := s.mongo.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
