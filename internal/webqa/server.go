// Package webqa provides the web QA server implementation.
package webqa

import (
	"context"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/bootstrap"
	"github.com/kart-io/wizora/internal/webqa/biz"
	"github.com/kart-io/wizora/internal/webqa/fetcher"
	"github.com/kart-io/wizora/internal/webqa/handler"
	"github.com/kart-io/wizora/internal/webqa/router"
	"github.com/kart-io/wizora/pkg/infra/app"
	"github.com/kart-io/wizora/pkg/infra/server"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
	webqaopts "github.com/kart-io/wizora/pkg/options/webqa"
)

// Name is the name of the application.
const Name = "wizora-web-qa"

// Config contains application-related configurations.
type Config struct {
	HTTPOptions       *httpopts.Options
	LogOptions        *logopts.Options
	PoolOptions       *poolopts.Options
	SummarizerOptions *llmopts.ProviderOptions
	LLMOptions        *llmopts.ProviderOptions
	WebQAOptions      *webqaopts.Options
	MiddlewareOptions *mwopts.Options
}

// Server represents the web QA server.
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

	// 2. 摘要模型与问答模型共享同一个池
	summarizer, err := infer.Runner(cfg.SummarizerOptions, "summarizer")
	if err != nil {
		_ = infer.Shutdown(ctx)
		return nil, err
	}
	answerer, err := infer.Runner(cfg.LLMOptions, "model")
	if err != nil {
		_ = infer.Shutdown(ctx)
		return nil, err
	}

	// 3. Biz 与 Handler
	f := fetcher.New(fetcher.Config{
		Timeout:   cfg.WebQAOptions.FetchTimeout,
		UserAgent: cfg.WebQAOptions.UserAgent,
		MaxBytes:  cfg.WebQAOptions.MaxPageBytes,
	})
	svc := biz.NewService(f, summarizer, answerer, biz.Config{
		SummaryInputChars: cfg.WebQAOptions.SummaryInputChars,
		SummaryMaxTokens:  cfg.WebQAOptions.SummaryMaxTokens,
		AnswerMaxTokens:   cfg.WebQAOptions.AnswerMaxTokens,
	})
	h := handler.NewWebQAHandler(svc)

	// 4. 服务管理器
	mgr := server.NewManager(server.Options{
		HTTP:       cfg.HTTPOptions,
		Middleware: cfg.MiddlewareOptions,
		Checks:     infer.Checks(),
	})
	router.Register(mgr, h)
	mgr.AddCloser("inference", infer.Shutdown)

	logger.Infow("Web QA service initialized",
		"summarizer", cfg.SummarizerOptions.Model,
		"model", cfg.LLMOptions.Model,
		"fetch_timeout", cfg.WebQAOptions.FetchTimeout.String(),
	)
	return &Server{srv: mgr}, nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer func() { _ = logger.Flush() }()
	return s.srv.Run(ctx)
}
