package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/ui"
	"github.com/flintbrowser/flint/internal/webkit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Sync()

	factory := webkit.NewFactory(cfg, logger)
	if err := factory.Available(); err != nil {
		logger.Fatal("browser engine unavailable", zap.Error(err))
	}

	win, err := webkit.NewWindow(factory, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create window", zap.Error(err))
	}

	app, err := ui.New(cfg, factory, win, logger)
	if err != nil {
		logger.Fatal("failed to initialize", zap.Error(err))
	}

	if err := app.Run(); err != nil {
		logger.Fatal("runtime failure", zap.Error(err))
	}
}
