package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/config"
	"github.com/longyuju1116/invoice/internal/export"
	httpserver "github.com/longyuju1116/invoice/internal/interfaces/http"
	"github.com/longyuju1116/invoice/internal/pdf"
	"github.com/longyuju1116/invoice/internal/repository"
	"github.com/longyuju1116/invoice/internal/storage"
	"github.com/longyuju1116/invoice/pkg/database"
	"github.com/longyuju1116/invoice/pkg/utils"
)

func main() {
	// Hydrate environment from .env before configuration is read
	gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting payment request form service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repository and storage
	formRepo := repository.NewFormRepository(db, logger)
	imageStore := storage.NewImageStore(cfg.Storage.UploadDir, logger)

	// Resolve the CJK font once; every generation shares the handle
	font := pdf.NewFontResolver(cfg.PDF.FontPaths, logger).Resolve()
	if font.Builtin {
		logger.Warn("No CJK font found, falling back to builtin font; " +
			"Chinese text will not render correctly")
	}

	generator := pdf.NewGenerator(pdf.Config{
		WrapWidth: cfg.PDF.WrapWidth,
		Budget: pdf.Budget{
			FirstPage:    cfg.PDF.FirstPageBudget,
			Continuation: cfg.PDF.ContinuationBudget,
		},
		MarkImagePath: cfg.PDF.MarkImagePath,
	}, font, logger)

	exporter := export.NewExporter(logger)

	// Initialize HTTP server
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		MaxImageSize: cfg.Storage.MaxImageSize,
	}, formRepo, generator, imageStore, exporter, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Shut down on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Service stopped")
}
