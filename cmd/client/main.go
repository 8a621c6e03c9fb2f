package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-cloud-sync/internal/client"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/internal/tui"
	"github.com/MKhiriev/go-cloud-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("cloud-sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if !logger.SetLevel(cfg.App.LogLevel) && cfg.App.LogLevel != "" {
		log.Warn().Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := workers.NewEventLoop()
	background := []workers.Worker{loop}

	httpCaller, err := rpc.NewHTTPCaller(cfg.Gateway, loop, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create gateway caller")
	}

	var subscriber rpc.Subscriber
	if cfg.Stream.BrokerURL != "" {
		mqtt, err := rpc.NewMQTTSubscriber(cfg.Stream, loop, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create change stream subscriber")
		}
		subscriber = mqtt
		background = append(background, mqtt)
	} else {
		log.Warn().Msg("no broker configured, collections will not follow live changes")
	}
	caller := rpc.NewStreamCaller(httpCaller, subscriber, log)

	tokens, err := store.NewTokenStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create token store")
	}

	services := service.NewServices(cfg, caller, httpCaller, tokens, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ui, workers.NewWorkers(background...), tokens, cfg.Sync.Collection, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return
		}
		log.Fatal().Err(err).Msg("client run error")
	}
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
