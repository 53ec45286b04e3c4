package main

import (
	"context"
	"fmt"

	"github.com/scorebook-app/scorebook/internal/adapter"
	"github.com/scorebook-app/scorebook/internal/client"
	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/service"
	"github.com/scorebook-app/scorebook/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("scorebook-sync")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remote, err := newRemoteTransport(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote transport")
	}

	localStorage, err := store.NewLocalStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(localStorage, remote, cfg, log)

	app, err := client.NewApp(cfg, services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

// newRemoteTransport selects the transport from configuration: a configured
// PostgreSQL DSN means the deployment reaches the shared database directly,
// otherwise the HTTP API is used.
func newRemoteTransport(cfg *config.ClientConfig, log *logger.Logger) (adapter.RemoteTransport, error) {
	if cfg.Adapter.PostgresDSN != "" {
		return adapter.NewPostgresRemoteTransport(context.Background(), cfg.Adapter, log)
	}
	return adapter.NewHTTPRemoteTransport(cfg.Adapter, log)
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
