package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/handler"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/mailer"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/server"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/service"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// .env is optional; the builder reads the environment either way.
	_ = godotenv.Load()

	log := logger.NewLogger("custody-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	kv, err := newKVStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage")
	}
	identities := store.NewIdentityRepository(kv, log)

	deliveries := mailer.NewNop(log)
	if cfg.Mailer.WebhookURL != "" {
		deliveries = mailer.NewWebhookMailer(cfg.Mailer, log)
	}
	dispatcher := workers.NewMailDispatcher(deliveries, log)
	defer dispatcher.Close()

	services, err := service.NewServices(identities, dispatcher, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, cfg.App.Version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(log, dispatcher).Run()

	srv.RunServer()
}

// newKVStore picks the storage backend from the configuration: Postgres
// when a DSN is set, SQLite when a file path is set, and the in-memory
// store otherwise. Ambiguous configurations are rejected earlier by the
// config validation.
func newKVStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (store.KVStore, error) {
	switch {
	case cfg.DB.DSN != "":
		return store.NewPostgresKV(ctx, cfg.DB, log)
	case cfg.SQLite.Path != "":
		return store.NewSQLiteKV(ctx, cfg.SQLite, log)
	default:
		log.Warn().Msg("no database configured, using in-memory storage")
		return store.NewMemoryKV(), nil
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
