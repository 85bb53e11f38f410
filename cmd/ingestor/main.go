package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_bookings/internal/adapters/observability"
	redisad "hotel_bookings/internal/adapters/redis"
	"hotel_bookings/internal/adapters/sources"
	"hotel_bookings/internal/app"
	"hotel_bookings/internal/bookings"
	"hotel_bookings/internal/domain"
	"hotel_bookings/internal/shared"
	mysqlrepo "hotel_bookings/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.SetLevel(cfg.LogLevel)

	if cfg.Source == shared.SourceMySQL {
		log.Fatal().Msg("ingestor reads from file or url; BOOKINGS_SOURCE=mysql is the target")
	}

	log.Info().
		Str("source", cfg.Source).
		Int("workers", cfg.Workers).
		Int("batch_size", cfg.BatchSize).
		Msg("ingestor starting")

	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")
	repo := mysqlrepo.New(db)

	src, closeSrc, err := sources.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("booking source failed")
	}
	defer func() { _ = closeSrc() }()

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	ing := app.NewIngestionService(src, repo, cache)
	table, err := ing.Load(ctx)
	if err != nil {
		observability.ErrorWithStack(err, "load bookings")
		os.Exit(1)
	}
	batches := app.Batches(table, cfg.BatchSize)
	log.Info().Int("rows", len(table)).Int("batches", len(batches)).Msg("bookings loaded")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for n, rows := range batches {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("semaphore acquire failed")
			failed.Add(1)
			break
		}

		wg.Add(1)
		go func(n int, rows bookings.Table) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestBatch(ctx, n, rows); err != nil {
				failed.Add(1)
				log.Warn().Int("batch", n).Err(err).Msg("ingest failed")
				return
			}
			log.Debug().Int("batch", n).Int("rows", len(rows)).Msg("ingest ok")
		}(n, rows)
	}
	wg.Wait()

	if f := failed.Load(); f > 0 {
		// succeeded batches already replaced their old rows; failed ones and
		// any beyond this run still hold the previous ingestion
		log.Error().Int32("failed", f).Int("batches", len(batches)).
			Msg("ingestion incomplete, store mixes new and previous rows; rerun to converge")
		os.Exit(1)
	}
	if err := ing.Finish(ctx, len(batches)); err != nil {
		log.Error().Err(err).Msg("prune failed")
		os.Exit(1)
	}
	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("status summary failed")
	}
	for _, c := range counts {
		log.Info().Str("status", c.Status).Int("count", c.Count).Msg("stored bookings")
	}
	log.Info().Int("rows", len(table)).Msg("ingestion completed")
}
