// Package app provides the CSV insights service application.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kart-io/wizora/cmd/csv-insights/app/options"
	"github.com/kart-io/wizora/pkg/infra/app"
)

const (
	// Name is the name of the application.
	Name = "csv-insights"

	// commandDesc is the description of the command.
	commandDesc = `Wizora CSV Insights

Upload a CSV or XLSX table and get an overall insight back.

The table is split into groups of rows, every group is summarized by a
text generation model and the summaries are merged into one final insight.

Endpoints:
  POST /analyze-csv/   multipart field "file"`
)

// NewApp creates and returns a new App object with default parameters.
func NewApp() *app.App {
	opts := options.NewServerOptions()
	return app.NewApp(
		app.WithName(Name),
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)
}

// run contains the main logic for initializing and running the server.
func run(opts *options.ServerOptions) app.RunFunc {
	return func() error {
		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := setupSignalContext()

		server, err := cfg.NewServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		// 收到信号后 ctx 取消，Run 负责优雅退出
		return server.Run(ctx)
	}
}

// setupSignalContext returns a context that is cancelled on SIGINT or SIGTERM.
// A second signal exits immediately.
func setupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}
