package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mealpath/mealplan-engine/internal/contract"
	"github.com/mealpath/mealplan-engine/internal/llm"
	"github.com/mealpath/mealplan-engine/internal/marketrun"
	"github.com/mealpath/mealplan-engine/internal/nutresolve"
	"github.com/mealpath/mealplan-engine/internal/nutrition"
	"github.com/mealpath/mealplan-engine/internal/orchestrator"
	"github.com/mealpath/mealplan-engine/internal/priceclient"
	"github.com/mealpath/mealplan-engine/internal/registry"
	transporthttp "github.com/mealpath/mealplan-engine/internal/transport/http"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	"github.com/mealpath/mealplan-engine/pkg/config"
	"github.com/mealpath/mealplan-engine/pkg/events"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/mealpath/mealplan-engine/pkg/ratelimit"
)

const serviceName = "mealplan-engine"

func main() {
	cfg, err := config.Load(os.Getenv("MEALPLAN_CONFIG_FILE"), nil, nil)
	if err != nil {
		panic(err)
	}

	log := applogger.New(serviceName, cfg.Debug)
	defer log.Sync()
	log.Info("starting mealplan engine", "environment", cfg.Environment)

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOrDefault("REDIS_ADDR", cfg.Redis.Addr),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	log.Info("connected to redis")

	priceCache := cache.New(rdb, "priceclient")
	nutritionCache := cache.New(rdb, "nutresolve")
	bucket := ratelimit.New(rdb, "marketrun", ratelimit.Config{
		Capacity:   cfg.PriceClient.BucketCapacity,
		RefillRate: cfg.PriceClient.BucketRefillRate,
		MaxWait:    cfg.PriceClient.BucketMaxWait,
	})

	reg := registry.New()

	// No live supermarket search provider is configured by default; a
	// deployment wires one per store (§4.6/§4.8) by constructing a
	// priceclient.HTTPSearchProvider pointed at that store's search API.
	priceClient := priceclient.New(nil, bucket, priceCache, priceclient.Config{
		HTTPTimeout:         cfg.PriceClient.HTTPTimeout,
		MaxRetries:          cfg.PriceClient.MaxRetries,
		RateLimitRetryDelay: cfg.PriceClient.RateLimitRetryDelay,
		FreshTTL:            cfg.PriceClient.FreshTTL,
		HardTTL:             cfg.PriceClient.HardTTL,
		PageSize:            cfg.PriceClient.PageSize,
	}, log)

	store := envOrDefault("MEALPLAN_DEFAULT_STORE", "S1")
	marketRunner := marketrun.New(reg, priceClient, store, cfg.MarketRun.Workers, log)

	offline := nutrition.NewOffline()
	resolver := nutresolve.New(offline, reg, nutritionCache, nil,
		nutresolve.Tolerances{KcalPct: cfg.Tolerances.FingerprintKcalPct, MacroPct: cfg.Tolerances.FingerprintMacroPct},
		cfg.Nutrition.FreshTTL, cfg.Nutrition.HardTTL, log)

	limits := contract.Limits{
		ProteinMaxGPerKg: cfg.HardCaps.ProteinMaxGPerKg,
		FatMaxMultiple:   cfg.HardCaps.FatMaxMultiple,
		CarbMinMultiple:  cfg.HardCaps.CarbMinMultiple,
		MinKcal:          cfg.HardCaps.MinKcal,
		KcalPct:          cfg.Tolerances.KcalPct,
		MacroPct:         cfg.Tolerances.MacroPct,
		CarbFloorPct:     cfg.Tolerances.CarbFloorPct,
	}

	// No real meal-sketching LLM vendor SDK exists in the example pack
	// to ground a wired client on; the stub collaborator (deterministic,
	// offline) stands in until one is wired.
	collaborator := llm.NewStub()

	orch := orchestrator.New(limits, reg, collaborator, marketRunner, resolver, cfg.Nutrition.ResolverWorkers, log)

	srv := transporthttp.NewServer(orch, log, cfg.Server.RequestWall)
	if cfg.Events.KafkaEnabled {
		kafkaSink := events.NewKafkaSink(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, log)
		defer kafkaSink.Close()
		srv = srv.WithEventsSink(kafkaSink)
		log.Info("publishing run events to kafka", "topic", cfg.Events.KafkaTopic)
	}

	httpServer := &http.Server{
		Addr:        ":" + portOr(cfg.Server.Port),
		Handler:     srv.Router(),
		ReadTimeout: cfg.Server.ReadTimeout,
		// No WriteTimeout: the mealplan endpoint streams NDJSON for up
		// to RequestWall (§5's 180s budget), which the handler already
		// enforces itself via context.WithTimeout; a server-level
		// WriteTimeout shorter than that would truncate the response.
	}

	go func() {
		log.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start http server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", "error", err)
	}
	if err := rdb.Close(); err != nil {
		log.Error("error closing redis connection", "error", err)
	}

	log.Info("stopped gracefully")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func portOr(p int) string {
	if p == 0 {
		return "8080"
	}
	return strconv.Itoa(p)
}
