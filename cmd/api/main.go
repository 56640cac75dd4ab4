package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/superio-server/internal/auth"
	"github.com/justsurfingit/superio-server/internal/config"
	"github.com/justsurfingit/superio-server/internal/database"
	"github.com/justsurfingit/superio-server/internal/handlers"
	"github.com/justsurfingit/superio-server/internal/logger"
	"github.com/justsurfingit/superio-server/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "superio-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database
	db, err := database.Connect(ctx, cfg.Database.Postgres, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", map[string]interface{}{"error": err})
		}
	}()

	// 3. Media host
	var mediaUploader services.MediaUploader
	if cfg.Cloudinary.Enabled() {
		cld, err := cloudinary.NewFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			return fmt.Errorf("failed to configure cloudinary: %w", err)
		}
		mediaUploader = &cld.Upload
		log.Info("media uploads enabled", map[string]interface{}{"cloud": cfg.Cloudinary.CloudName})
	} else {
		log.Warn("cloudinary credentials missing, logo uploads will fail", nil)
	}

	// 4. Services and router
	router := handlers.NewRouter(cfg, handlers.Dependencies{
		Jobs:         services.NewJobService(db),
		Categories:   services.NewCategoryService(db),
		Applications: services.NewApplicationService(db),
		Uploads:      services.NewUploadService(mediaUploader, cfg.Cloudinary.UploadPreset, cfg.Cloudinary.AllowedFormats),
		Tokens:       auth.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Log: log,
	})

	return serve(ctx, cfg, router, log)
}

func serve(ctx context.Context, cfg *config.Config, router http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Superio server is running...", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]interface{}{"timeout": cfg.Server.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}
