package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"trove-storefront/internal/catalog"
	"trove-storefront/internal/checkout"
	"trove-storefront/internal/config"
	"trove-storefront/internal/db"
	"trove-storefront/internal/gateway"
	"trove-storefront/internal/guard"
	"trove-storefront/internal/httpserver"
	cartrepo "trove-storefront/internal/repository/cart"
	favrepo "trove-storefront/internal/repository/favorites"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.PoolSettings{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBConnIdleTime,
		MaxConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	cartRepo := cartrepo.NewPostgres(dbpool)
	favoritesRepo := favrepo.NewPostgres(dbpool)
	orderGateway := gateway.NewClient(cfg.Commerce.BaseURL, cfg.Commerce.APIKey, cfg.Commerce.Timeout, logger)
	catalogClient := catalog.NewClient(cfg.Commerce.BaseURL, cfg.Commerce.APIKey, cfg.Commerce.Timeout, logger)
	checkoutSessions := checkout.NewSessions(orderGateway, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartRepo:      cartRepo,
		FavoritesRepo: favoritesRepo,
		Checkout:      checkoutSessions,
		Catalog:       catalogClient,
		PageGuard:     guard.DefaultConfig(),
		APIGuard:      httpserver.APIGuardConfig(),
		JWTSecret:     cfg.JWTSecret,
		CORSOrigins:   cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func newLogger(environment string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
