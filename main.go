package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pdf_shrinker/api"
	"pdf_shrinker/config"
	"pdf_shrinker/logger"
	"pdf_shrinker/pdf"
	"pdf_shrinker/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 60 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second

	// writeTimeoutSlack is added on top of the conversion timeout so a slow
	// Ghostscript run can still be streamed back
	writeTimeoutSlack = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the configured logger needs the config, fall back to the default one
		fallback, _ := zap.NewProduction()
		fallback.Fatal("Failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel, cfg.DebugMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	area, err := storage.NewArea(cfg.UploadFolder)
	if err != nil {
		log.Fatal("Failed to open storage area", zap.Error(err))
	}

	compressor := pdf.NewCompressor(cfg.GhostscriptBin, cfg.ConversionTimeout, log.Named("ghostscript"))

	// Check ghostscript availability on startup
	version, err := compressor.Version(context.Background())
	if err != nil {
		log.Fatal("Ghostscript not available. Please install ghostscript or set GHOSTSCRIPT_BIN.",
			zap.String("bin", cfg.GhostscriptBin), zap.Error(err))
	}
	log.Info("Ghostscript is available", zap.String("version", version))

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinMiddleware(log.Named("http")))
	r.Use(gin.Recovery())

	api.SetupRoutes(r, &api.Config{
		Store:       area,
		Converter:   compressor,
		Logger:      log.Named("api"),
		MaxFileSize: cfg.MaxFileSize,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the retention sweeper before serving
	sweeper := storage.NewSweeper(area, cfg.CleanupDuration, cfg.CleanupInterval, log.Named("sweeper"))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: cfg.ConversionTimeout + writeTimeoutSlack,
		IdleTimeout:  ServerIdleTimeout,
	}

	go func() {
		log.Info("Server starting",
			zap.String("address", srv.Addr),
			zap.Bool("debug", cfg.DebugMode),
			zap.Int64("max_file_size", cfg.MaxFileSize),
			zap.String("upload_folder", cfg.UploadFolder),
			zap.Duration("retention", cfg.CleanupDuration))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	wg.Wait()

	log.Info("Server exited gracefully")
}
