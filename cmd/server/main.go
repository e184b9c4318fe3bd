package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/config"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/handler"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/metrics"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/server"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// connectTimeout bounds the startup connection checks of the store and cache.
const connectTimeout = 30 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("restaurant-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	log.Info().Str("backend", storages.Backend()).Msg("storages created")

	var cache store.FoodCache = store.NopFoodCache{}
	if cfg.Cache.RedisAddress != "" {
		redisCache, err := store.NewRedisFoodCache(ctx, cfg.Cache, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating cache")
		}
		cache = redisCache
	}

	m := metrics.New()

	retryWorker := workers.NewIncrementRetryWorker(storages.FoodRepository, cache, storages.IsRetryable, cfg.Workers, m, log)

	services := service.NewServices(storages, cache, retryWorker, m, *cfg, log)
	handlers, err := handler.NewHandlers(services, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers.HTTP.Init(), cfg.Server, log,
		server.WithWorkers(workers.NewWorkers(retryWorker)),
		server.WithCloser("cache", func(context.Context) error { return cache.Close() }),
		server.WithCloser("storage", storages.Close),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
