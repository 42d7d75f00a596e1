package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	_ "github.com/soldiers/admin-gateway/docs"
	"github.com/soldiers/admin-gateway/internal/api"
	"github.com/soldiers/admin-gateway/internal/api/middleware"
	"github.com/soldiers/admin-gateway/internal/core/access"
	"github.com/soldiers/admin-gateway/internal/core/service"
	"github.com/soldiers/admin-gateway/internal/infrastructure/backend"
	"github.com/soldiers/admin-gateway/internal/infrastructure/config"
	"github.com/soldiers/admin-gateway/internal/infrastructure/db/mongo"
	"github.com/soldiers/admin-gateway/internal/infrastructure/db/redis"
	"github.com/soldiers/admin-gateway/internal/infrastructure/http/handlers"
	"github.com/soldiers/admin-gateway/internal/infrastructure/memory"
	"github.com/soldiers/admin-gateway/internal/infrastructure/queue"
	"github.com/soldiers/admin-gateway/pkg/logger"
)

const (
	submitGuardTTL  = 30 * time.Second
	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "soldiers-gateway",
		Env:     cfg.Env,
	})

	// Mongo (receipts)
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}

	// Redis (sessions, list cache, submit guard)
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	client := backend.NewClient(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, log)
	sessions := redis.NewSessionStore(rdb)
	lists := redis.NewListCache(rdb)
	guard := redis.NewSubmitGuard(rdb, submitGuardTTL)
	carts := memory.NewCartStore()

	receiptService := service.NewReceiptService(mongo.NewReceiptRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.ReceiptWorkers, receiptService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(client, sessions, cfg.JWTSecret, cfg.SessionTTL, log)
	cartService := service.NewCartService(client, carts, guard, dispatcher, lists, log)
	resourceService := service.NewResourceService(client, lists, cfg.ListCacheTTL, log)
	reportService := service.NewReportService(client, log)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.Login.Rate), cfg.Login.Burst)

	e := api.NewRouter(api.Deps{
		Auth:         authService,
		Carts:        cartService,
		Resources:    resourceService,
		Reports:      reportService,
		Receipts:     receiptService,
		Access:       access.NewEvaluator(cfg.AdminFallbackEmail),
		LoginLimiter: limiter,
		CORSOrigins:  cfg.CORSOrigins,
		Probes: map[string]handlers.Pinger{
			"mongodb": handlers.MongoPinger(db),
			"redis":   handlers.RedisPinger(rdb),
			"backend": handlers.BackendPinger(&http.Client{Timeout: cfg.Backend.Timeout}, cfg.Backend.URL),
		},
		Logger: log,
	})

	go janitor(ctx, carts, limiter, cfg.CartIdleTTL, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.URL).Msg("gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Stop accepting receipts, then let the workers drain before the
	// database goes away.
	dispatcher.Close()
	cancel()

	if err := mongo.Disconnect(mongoClient, shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	log.Info().Msg("bye")
}

// janitor evicts idle carts and stale login limiters.
func janitor(ctx context.Context, carts *memory.CartStore, limiter *middleware.RateLimiter, cartIdle time.Duration, log zerolog.Logger) {
	t := time.NewTicker(janitorInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pruned := carts.Prune(cartIdle)
			swept := limiter.Sweep(10 * janitorInterval)
			if pruned > 0 || swept > 0 {
				log.Debug().Int("carts", pruned).Int("limiters", swept).Msg("janitor sweep")
			}
		}
	}
}
