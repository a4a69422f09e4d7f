// Package docqa provides the document QA server implementation.
package docqa

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/bootstrap"
	"github.com/kart-io/wizora/internal/docqa/biz"
	"github.com/kart-io/wizora/internal/docqa/handler"
	"github.com/kart-io/wizora/internal/docqa/router"
	"github.com/kart-io/wizora/internal/docqa/store"
	"github.com/kart-io/wizora/pkg/component/redis"
	"github.com/kart-io/wizora/pkg/infra/app"
	"github.com/kart-io/wizora/pkg/infra/middleware"
	"github.com/kart-io/wizora/pkg/infra/server"
	docqaopts "github.com/kart-io/wizora/pkg/options/docqa"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
	redisopts "github.com/kart-io/wizora/pkg/options/redis"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
)

// Name is the name of the application.
const Name = "wizora-doc-qa"

// Config contains application-related configurations.
type Config struct {
	HTTPOptions       *httpopts.Options
	LogOptions        *logopts.Options
	PoolOptions       *poolopts.Options
	LLMOptions        *llmopts.ProviderOptions
	DocQAOptions      *docqaopts.Options
	RedisOptions      *redisopts.Options
	MiddlewareOptions *mwopts.Options
}

// Server represents the document QA server.
type Server struct {
	srv *server.Manager
}

// NewServer initializes and returns a new Server instance.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	// 1. 日志与推理池
	infer := bootstrap.NewInferenceInitializer(Name, cfg.PoolOptions)
	if err := bootstrap.InitializeAll(ctx,
		bootstrap.NewLoggingInitializer(cfg.LogOptions, Name, app.GetVersion()),
		infer,
	); err != nil {
		return nil, err
	}

	// 2. 语料存储
	checks := []middleware.ReadinessCheck{}
	var (
		corpus   store.CorpusStore
		rdb      *redis.Client
		closeAll = func() { _ = infer.Shutdown(ctx) }
	)
	switch cfg.DocQAOptions.Store {
	case docqaopts.StoreRedis:
		c, err := redis.NewWithContext(ctx, cfg.RedisOptions)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		rdb = c
		corpus = store.NewRedisStore(c.Client(), cfg.RedisOptions.KeyPrefix, cfg.RedisOptions.TTL)
		checks = append(checks, middleware.ReadinessCheck{Name: "redis", Check: c.Ping})
		logger.Infow("Redis corpus store initialized",
			"addr", cfg.RedisOptions.Addr(),
			"ttl", cfg.RedisOptions.TTL.String(),
		)
	default:
		corpus = store.NewMemoryStore()
		logger.Info("Memory corpus store initialized")
	}

	// 3. 模型
	runner, err := infer.Runner(cfg.LLMOptions, "model")
	if err != nil {
		closeAll()
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}

	// 4. Biz 与 Handler
	svc := biz.NewService(corpus, runner, biz.Config{
		ChunkSize: cfg.DocQAOptions.ChunkSize,
		MaxTokens: cfg.DocQAOptions.MaxTokens,
	})
	h := handler.NewDocQAHandler(svc, cfg.DocQAOptions.DefaultSession, cfg.DocQAOptions.NoContextStatus)

	// 5. 服务管理器
	mgr := server.NewManager(server.Options{
		HTTP:       cfg.HTTPOptions,
		Middleware: cfg.MiddlewareOptions,
		Checks:     append(checks, infer.Checks()...),
	})
	router.Register(mgr, h)

	// 关闭顺序与注册相反：先释放推理池，再断开 Redis
	if rdb != nil {
		mgr.AddCloser("redis", func(context.Context) error { return rdb.Close() })
	}
	mgr.AddCloser("inference", infer.Shutdown)

	logger.Infow("Document QA service initialized",
		"provider", runner.Name(),
		"model", cfg.LLMOptions.Model,
		"store", corpus.Name(),
		"chunk_size", cfg.DocQAOptions.ChunkSize,
	)
	return &Server{srv: mgr}, nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer func() { _ = logger.Flush() }()
	return s.srv.Run(ctx)
}
