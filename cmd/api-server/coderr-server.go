package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"coderr/db"
	"coderr/db/migrations"
	"coderr/internal/config"
	"coderr/internal/handlers"
	"coderr/internal/identity"
	"coderr/internal/observability"
	"coderr/internal/service"
	"coderr/internal/storage/memory"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// store - все, что нужно сервисам и HTTP-слою от хранилища
type store interface {
	service.OfferStore
	service.OrderStore
	service.ReviewStore
	service.StatsStore
	handlers.ProfileLookup
	handlers.Pinger
	Close() error
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("cannot open storage", zap.Error(err))
	}
	defer st.Close()

	tokens, err := identity.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("cannot configure tokens", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	deps := service.Deps{Logger: logger, Metrics: metrics}
	h := handlers.NewHandler(handlers.Services{
		Offers:  service.NewOfferService(st, deps),
		Orders:  service.NewOrderService(st, deps),
		Reviews: service.NewReviewService(st, deps),
		Stats:   service.NewStatsService(st),
		Store:   st,
	}, logger, cfg.MaxBodyBytes)
	auth := handlers.NewAuthenticator(tokens, st, logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: handlers.NewRouter(h, auth, metrics, logger),
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.ServerAddress), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store, error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	}

	conn, err := db.Connect(ctx, cfg.PostgresConn, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	if cfg.MigrationsEnabled {
		if err := migrations.Run(conn.DB); err != nil {
			conn.Close()
			return nil, err
		}
		logger.Info("migrations applied")
	}
	return db.NewStorage(conn), nil
}
