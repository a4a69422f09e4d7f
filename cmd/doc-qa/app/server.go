// Package app provides the document QA service application.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kart-io/wizora/cmd/doc-qa/app/options"
	"github.com/kart-io/wizora/pkg/infra/app"
)

const (
	// Name is the name of the application.
	Name = "doc-qa"

	// commandDesc is the description of the command.
	commandDesc = `Wizora Document QA

Upload a PDF, DOCX or text document, then ask questions about it. The most
relevant chunk of the document is selected with TF-IDF similarity and passed
to a text generation model together with the question.

Sessions are selected with the X-Session-ID header.

Endpoints:
  POST /upload     multipart field "file"
  POST /question   {"question": "..."}`
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
