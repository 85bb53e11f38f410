package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_bookings/internal/adapters/http_server"
	"hotel_bookings/internal/adapters/observability"
	redisad "hotel_bookings/internal/adapters/redis"
	"hotel_bookings/internal/adapters/sources"
	"hotel_bookings/internal/app"
	"hotel_bookings/internal/domain"
	"hotel_bookings/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.SetLevel(cfg.LogLevel)

	observability.Serve(cfg.MetricsAddr)

	src, closeSrc, err := sources.FromConfig(ctx, cfg)
	if err != nil {
		observability.ErrorWithStack(err, "booking source")
		log.Fatal().Err(err).Str("source", cfg.Source).Msg("booking source failed")
	}
	defer func() { _ = closeSrc() }()
	log.Info().Str("source", cfg.Source).Msg("booking source ready")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, caching disabled")
		} else {
			cache = rc
			defer rc.Close()
		}
	}
	q := app.NewQueryService(src, cache, cfg.CacheTTLDuration())

	// http
	srv := server.New(server.Options{RPS: cfg.HTTPRPS})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
