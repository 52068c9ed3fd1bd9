package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"goodsmile/clinic/internal/api"
	"goodsmile/clinic/internal/cache"
	"goodsmile/clinic/internal/config"
	"goodsmile/clinic/internal/database"
	"goodsmile/clinic/internal/ledger"
	"goodsmile/clinic/internal/migrations"
	"goodsmile/clinic/internal/obs"
	"goodsmile/clinic/internal/printout"
	"goodsmile/clinic/internal/realtime"
	"goodsmile/clinic/internal/schedule"
	"goodsmile/clinic/internal/seed"
	"goodsmile/clinic/internal/session"
	"goodsmile/clinic/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}
	if cfg.LedgerSeedPath != "" {
		n, err := seed.LoadTransactions(db, cfg.LedgerSeedPath, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("seed ledger")
		}
		logger.Info().Int("rows", n).Str("path", cfg.LedgerSeedPath).Msg("ledger seeded")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Msg("ping redis, summaries will not be cached")
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
	}
	summaries := cache.New(redisClient, cfg.SummaryCacheTTL)

	closed, err := schedule.ParseWeekday(cfg.ClosedDay)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse CLINIC_CLOSED_DAY")
	}
	policy := schedule.DefaultPolicy()
	policy.ClosedDay = closed

	hash := cfg.PasswordHash
	if hash == "" {
		hash, err = session.HashPassword(cfg.Password, 0)
		if err != nil {
			logger.Fatal().Err(err).Msg("hash clinic password")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics("clinic", registry)

	st := store.New(db)
	hub := realtime.NewHub(cache.Invalidator{Cache: summaries}, metrics)
	handler := api.New(api.Deps{
		Store:  st,
		Ledger: &ledger.Service{Source: st, Cache: summaries, Logger: logger, Now: cfg.Now},
		Hub:    hub,
		Sessions: &session.Manager{
			PasswordHash: hash,
			Secret:       cfg.Secret,
			TTL:          cfg.SessionTTL,
			MaxAttempts:  cfg.LoginMaxAttempts,
			Lockout:      cfg.LoginLockout,
		},
		Policy:      policy,
		PDF:         printout.PDFRenderer{FontPath: cfg.BillFontPath},
		Metrics:     metrics,
		Gatherer:    registry,
		Logger:      logger,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Now:         cfg.Now,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// No write timeout: /api/events holds the response open until ctx ends.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Bool("cache", redisClient != nil).Msg("clinic server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("clinic server stopped")
}
