package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ratewatch/internal/adapters/observability"
	"ratewatch/internal/adapters/rateshopper"
	redisad "ratewatch/internal/adapters/redis"
	"ratewatch/internal/app"
	"ratewatch/internal/shared"
	mysqlrepo "ratewatch/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "ratewatch-scanner")

	log.Info().
		Str("base", cfg.ShopperBase).
		Int("workers", cfg.Workers).
		Int("mentions", cfg.MentionCount).
		Msg("scanner starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := rateshopper.New(cfg.ShopperBase, cfg.ShopperKey, cfg.ShopperRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize rate-shopper client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	scan := app.NewScanService(client, repo, cache)

	// 2) explicit id list wins; otherwise sweep everything the db knows about
	ids := cfg.ScanIDs
	if len(ids) == 0 {
		if ids, err = repo.ListScanTargets(ctx); err != nil {
			log.Fatal().Err(err).Msg("list scan targets failed")
		}
	}
	if len(ids) == 0 {
		log.Warn().Msg("nothing to scan; seed competitor_sets or set SCAN_PROPERTY_IDS")
		return
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(propertyID int64) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := scan.ScanProperty(ctx, propertyID, cfg.MentionCount); err != nil {
				log.Warn().Int64("id", propertyID).Err(err).Msg("scan failed")
				return
			}
			log.Info().Int64("id", propertyID).Msg("scan ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("scan sweep completed")
}
