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

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/garage/internal/auth"
	"github.com/ukydev/garage/internal/config"
	"github.com/ukydev/garage/internal/db"
	"github.com/ukydev/garage/internal/garage"
	"github.com/ukydev/garage/internal/handlers"
	"github.com/ukydev/garage/internal/logging"
	"github.com/ukydev/garage/internal/reports"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	client, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()
	logger.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")

	store := db.NewStore(client, cfg.MongoDB)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}

	router := handlers.NewRouter(routerConfig(cfg, logger, store, tokens))
	return serve(ctx, newServer(cfg, router), cfg.ShutdownTimeout, logger)
}

func routerConfig(cfg *config.Config, logger *log.Logger, store *db.Store, tokens *auth.Service) handlers.RouterConfig {
	tx := store.Transactor()
	cars, services := store.Cars(), store.Services()
	records, parts, payments := store.ServiceRecords(), store.Parts(), store.Payments()

	return handlers.RouterConfig{
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		AuthRateLimit: cfg.AuthRateLimit,
		AuthWindow:    cfg.AuthRateWindow,
		Tokens:        tokens,
		Auth:          tokens,
		Users:         store.Users(),
		Store:         store,
		Cars:          garage.NewCarManager(cars, records, tx),
		Services:      garage.NewServiceManager(services, records, tx),
		Records:       garage.NewRecordManager(records, parts, payments, cars, services, tx),
		Payments:      garage.NewPaymentManager(payments, records, tx),
		Reports:       reports.NewEngine(payments, records, parts),
	}
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           http.TimeoutHandler(handler, cfg.RequestTimeout, `{"message":"Request timed out"}`),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("HTTP server listening")
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

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
