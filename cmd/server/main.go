package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/43mm/twitch-drops-list/internal/cache"
	"github.com/43mm/twitch-drops-list/internal/config"
	"github.com/43mm/twitch-drops-list/internal/endpoint"
	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/listing"
	"github.com/43mm/twitch-drops-list/internal/logger"
	"github.com/43mm/twitch-drops-list/internal/metrics"
	"github.com/43mm/twitch-drops-list/internal/middleware"
	"github.com/43mm/twitch-drops-list/internal/normalize"
	"github.com/43mm/twitch-drops-list/internal/service"
	"github.com/43mm/twitch-drops-list/internal/transport"
)

const VERSION = "1.0.0"

func init() {
	config.LoadConfigs()
}

func main() {
	log := logger.New(logger.Config{
		Service: "twitch-drops-list",
		Version: VERSION,
	})

	promMetrics := metrics.NewPrometheusMetrics()

	fetchCfg := config.AppConfigInstance.FetchConfig
	fetcher := fetch.NewHTTPFetcher(fetchCfg.DropsAPIURL, &http.Client{Timeout: fetchCfg.Timeout})
	normalizer := normalize.New(log)

	var provider service.SnapshotProvider = service.NewAPISnapshotProvider(fetcher, normalizer)
	provider = service.NewInstrumentedProvider(provider, promMetrics)

	cacheCfg := config.GetCacheConfig()
	snapshotCache, err := cache.NewHybridCache(cacheCfg)
	if err != nil {
		log.Log("msg", "failed to initialize snapshot cache", "err", err.Error())
		os.Exit(1)
	}
	provider = cache.NewCachedProvider(provider, snapshotCache, cacheCfg.DefaultTTL, log)

	builder := listing.NewBuilder(
		listing.WithWindowDays(config.AppConfigInstance.ListingConfig.WindowDays),
	)

	var svc service.DropsService = service.NewListingService(provider, builder)
	svc = middleware.NewServiceMetricsMiddleware(promMetrics)(svc)
	svc = middleware.NewLoggingMiddleware(log)(svc)

	endpoints := endpoint.MakeDropsEndpoints(svc, time.Now)

	var handler http.Handler = transport.NewHTTPHandler(endpoints, snapshotCache, log)
	handler = middleware.NewMetricsMiddleware(promMetrics).Middleware(handler)
	handler = middleware.NewRequestIDMiddleware().Middleware(handler)

	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfigInstance.GeneralConfig.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Log("msg", "starting server", "port", config.AppConfigInstance.GeneralConfig.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Log("msg", "failed to serve http server", "err", err.Error())
		os.Exit(1)
	}
}
