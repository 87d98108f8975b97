package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-image-gateway/internal/adapter"
	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/handler"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/metrics"
	"github.com/MKhiriev/go-image-gateway/internal/server"
	"github.com/MKhiriev/go-image-gateway/internal/service"
	"github.com/MKhiriev/go-image-gateway/internal/store"
	"github.com/MKhiriev/go-image-gateway/internal/workers"
	"github.com/MKhiriev/go-image-gateway/models"
)

const limiterJanitorInterval = time.Minute

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("image-gateway").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("image-gateway", cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	var background []workers.Worker

	var identity adapter.IdentityProvider
	switch cfg.App.IdentityProvider {
	case config.IdentityProviderHMAC:
		identity = adapter.NewHMACIdentityProvider(cfg.App)
	default:
		firebase, fbErr := adapter.NewFirebaseIdentityProvider(cfg.App, log)
		if fbErr != nil {
			log.Fatal().Err(fbErr).Msg("error creating firebase identity provider")
		}
		identity = firebase
		background = append(background,
			workers.NewPeriodic("firebase-certs", cfg.App.CertsRefreshInterval, firebase.Refresh, log))
	}

	remover, err := adapter.NewRembgBackgroundRemover(cfg.Capabilities, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating background remover")
	}

	upscaler := upscalerCapability(ctx, cfg.Capabilities, m, log)

	services := service.NewServices(storages, service.Adapters{
		IdentityProvider:  identity,
		BackgroundRemover: remover,
		Upscaler:          upscaler,
	}, *cfg, m, log)

	handlers, err := handler.NewHandlers(services, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	if handlers.HTTP.RateLimitEnabled() {
		background = append(background,
			workers.NewPeriodic("rate-limiter-janitor", limiterJanitorInterval, handlers.HTTP.EvictIdleClients, log))
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobs := workers.NewWorkers(background...)
	jobs.Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	cancel()
	jobs.Wait()
}
