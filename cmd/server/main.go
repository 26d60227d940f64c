package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainboard/job-board-api/internal/api"
	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/service"
	"github.com/chainboard/job-board-api/internal/infrastructure/config"
	mongodb "github.com/chainboard/job-board-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chainboard/job-board-api/internal/infrastructure/db/redis"
	"github.com/chainboard/job-board-api/internal/infrastructure/generative"
	"github.com/chainboard/job-board-api/internal/infrastructure/ledger"
	"github.com/chainboard/job-board-api/pkg/logger"
)

// @title        Chainboard Job Board API
// @version      1.0
// @description  Job board with on-chain platform fee verification and model-assisted matching.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	feeWei, err := cfg.Ledger.FeeWei()
	if err != nil {
		logg.Fatal().Err(err).Msg("invalid platform fee")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logg.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewJobRepository(db).EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("job index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		// Redis only backs advisory claim locks; the verifier degrades
		// without it. Keep the client and let every call surface errors.
		logg.Warn().Err(err).Msg("redis unreachable at startup, claim locks degraded")
	}
	defer func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	ledgerClient := ledger.NewClient(ledger.Config{
		RPCURL:  cfg.Ledger.RPCURL,
		Timeout: cfg.Ledger.Timeout,
	})
	completionClient := generative.NewGeminiClient(generative.Config{
		BaseURL: cfg.Generative.BaseURL,
		Model:   cfg.Generative.Model,
		APIKey:  cfg.Generative.APIKey,
		Timeout: cfg.Generative.Timeout,
	})

	e := api.NewRouter(db, rdb, ledgerClient, completionClient, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		FeePolicy: domain.FeePolicy{
			AdminWallet: cfg.Ledger.AdminWallet,
			FeeWei:      feeWei,
		},
		DoubleConfirmPolicy: service.DoubleConfirmPolicy(cfg.Ledger.DoubleConfirmPolicy),
		FeedConfirmedOnly:   cfg.FeedConfirmedOnly,
	})

	go func() {
		logg.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	logg.Info().Msg("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("error during server shutdown")
	}
	logg.Info().Msg("shutdown complete")
}
