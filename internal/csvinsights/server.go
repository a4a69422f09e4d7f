// Package csvinsights provides the CSV insights server implementation.
package csvinsights

import (
	"context"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/bootstrap"
	"github.com/kart-io/wizora/internal/csvinsights/biz"
	"github.com/kart-io/wizora/internal/csvinsights/handler"
	"github.com/kart-io/wizora/internal/csvinsights/router"
	"github.com/kart-io/wizora/pkg/infra/app"
	"github.com/kart-io/wizora/pkg/infra/server"
	insightsopts "github.com/kart-io/wizora/pkg/options/insights"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
)

// Name is the name of the application.
const Name = "wizora-csv-insights"

// Config contains application-related configurations.
type Config struct {
	HTTPOptions       *httpopts.Options
	LogOptions        *logopts.Options
	PoolOptions       *poolopts.Options
	LLMOptions        *llmopts.ProviderOptions
	InsightsOptions   *insightsopts.Options
	MiddlewareOptions *mwopts.Options
}

// Server represents the CSV insights server.
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

	// 2. 模型
	runner, err := infer.Runner(cfg.LLMOptions, "model")
	if err != nil {
		_ = infer.Shutdown(ctx)
		return nil, err
	}

	// 3. Biz 与 Handler
	svc := biz.NewService(runner, biz.Config{
		ChunkSize:      cfg.InsightsOptions.ChunkSize,
		ChunkMaxTokens: cfg.InsightsOptions.ChunkMaxTokens,
		FinalMaxTokens: cfg.InsightsOptions.FinalMaxTokens,
		Temperature:    cfg.InsightsOptions.Temperature,
		MaxRows:        cfg.InsightsOptions.MaxRows,
		Concurrency:    cfg.PoolOptions.Capacity,
	})
	h := handler.NewInsightsHandler(svc)

	// 4. 服务管理器
	mgr := server.NewManager(server.Options{
		HTTP:       cfg.HTTPOptions,
		Middleware: cfg.MiddlewareOptions,
		Checks:     infer.Checks(),
	})
	router.Register(mgr, h)
	mgr.AddCloser("inference", infer.Shutdown)

	logger.Infow("CSV insights service initialized",
		"provider", runner.Name(),
		"model", cfg.LLMOptions.Model,
		"chunk_size", cfg.InsightsOptions.ChunkSize,
	)
	return &Server{srv: mgr}, nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer func() { _ = logger.Flush() }()
	return s.srv.Run(ctx)
}
