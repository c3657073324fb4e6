package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"entregas/internal/config"
	"entregas/internal/handler"
	"entregas/internal/logger"
	"entregas/internal/repository/postgres"
	"entregas/internal/router"
	"entregas/internal/service"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Setup(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	deliveryRepo := postgres.NewDeliveryRepo(db)
	credentialRepo := postgres.NewCredentialRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(credentialRepo, cfg.JWT)
	deliverySvc := service.NewDeliveryService(deliveryRepo)
	reportSvc := service.NewReportService(deliveryRepo, cfg.Report)

	// Setup router
	r := router.Setup(cfg, log, authSvc, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Delivery: handler.NewDeliveryHandler(deliverySvc),
		Report:   handler.NewReportHandler(reportSvc),
		Health:   handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port":           cfg.Server.Port,
			"default_tenant": cfg.Report.DefaultTenant,
			"timezone":       cfg.Report.Timezone,
		}).Info("server starting")
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-sigCtx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	return nil
}
