package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"carrental/internal/api"
	"carrental/internal/api/handlers"
	"carrental/internal/api/middleware"
	"carrental/internal/config"
	"carrental/internal/logging"
	"carrental/internal/pricing"
	"carrental/internal/repository/memory"
	"carrental/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log, os.Stderr)

	rules, err := cfg.RuleSet()
	if err != nil {
		return err
	}

	// Repositories
	carRepo := memory.NewCarRepository()
	rentalRepo := memory.NewRentalRepository()
	lockManager := memory.NewLockManager()

	// Services
	notificationService := services.NewNotificationService(logger)
	policy := pricing.NewPolicy(rules)
	fleet := services.NewFleet(carRepo, lockManager, notificationService)
	ledger := services.NewRentalLedger(fleet, rentalRepo, lockManager, policy, notificationService)

	// Handlers and router
	router := api.NewRouter(
		handlers.NewCarHandler(fleet),
		handlers.NewRentalHandler(ledger),
		handlers.NewQuoteHandler(ledger, policy),
	)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.Setup(engine)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting car rental server", "addr", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
