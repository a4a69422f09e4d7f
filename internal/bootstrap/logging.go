package bootstrap

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	logopts "github.com/kart-io/wizora/pkg/options/logger"
)

// LoggingInitializer installs the global logger.
type LoggingInitializer struct {
	opts       *logopts.Options
	appName    string
	appVersion string
}

// NewLoggingInitializer creates a new LoggingInitializer.
func NewLoggingInitializer(opts *logopts.Options, appName, appVersion string) *LoggingInitializer {
	return &LoggingInitializer{
		opts:       opts,
		appName:    appName,
		appVersion: appVersion,
	}
}

// Name returns the name of the initializer.
func (li *LoggingInitializer) Name() string {
	return "logging"
}

// Initialize initializes the logging system.
func (li *LoggingInitializer) Initialize(_ context.Context) error {
	// 注入服务元数据
	li.opts.AddInitialField("service.name", li.appName)
	li.opts.AddInitialField("service.version", li.appVersion)

	if err := li.opts.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Infow("Starting service",
		"app", li.appName,
		"version", li.appVersion,
	)
	return nil
}
