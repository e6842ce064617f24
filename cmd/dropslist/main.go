package main

import (
	"context"
	"net/http"
	"os"

	"github.com/43mm/twitch-drops-list/internal/config"
	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/listing"
	"github.com/43mm/twitch-drops-list/internal/logger"
	"github.com/43mm/twitch-drops-list/internal/middleware"
	"github.com/43mm/twitch-drops-list/internal/normalize"
	"github.com/43mm/twitch-drops-list/internal/publish"
	"github.com/43mm/twitch-drops-list/internal/render"
	"github.com/43mm/twitch-drops-list/internal/runner"
	"github.com/43mm/twitch-drops-list/internal/service"
)

const VERSION = "1.0.0"

func init() {
	config.LoadConfigs()
}

func main() {
	log := logger.New(logger.Config{
		Service: "dropslist",
		Version: VERSION,
	})

	fetchCfg := config.AppConfigInstance.FetchConfig
	fetcher := fetch.NewHTTPFetcher(fetchCfg.DropsAPIURL, &http.Client{Timeout: fetchCfg.Timeout})
	normalizer := normalize.New(log)
	provider := service.NewAPISnapshotProvider(fetcher, normalizer)

	builder := listing.NewBuilder(
		listing.WithWindowDays(config.AppConfigInstance.ListingConfig.WindowDays),
	)

	var svc service.DropsService = service.NewListingService(provider, builder)
	svc = middleware.NewLoggingMiddleware(log)(svc)

	var publisher publish.Publisher
	outputPath := config.AppConfigInstance.PublishConfig.OutputPath
	if outputPath == "" || outputPath == "-" {
		publisher = publish.NewWriterPublisher(os.Stdout)
	} else {
		publisher = publish.NewFilePublisher(outputPath)
	}

	run := runner.New(svc, render.NewMarkdown(), publisher, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), fetchCfg.Timeout*2)
	defer cancel()

	if err := run.RunOnce(ctx); err != nil {
		log.Log("msg", "run failed", "err", err.Error())
		os.Exit(1)
	}

	log.Log("msg", "listing published", "output", outputPath)
}
