package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mcdev12/gridiron/go/internal/notify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	config, err := loadConfig(getEnv("GRIDIRON_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer database.Close()

	nCfg := notify.DefaultJetStreamConfig()
	if config.Notifications.URL != "" {
		nCfg.URL = config.Notifications.URL
	}
	if config.Notifications.StreamName != "" {
		nCfg.StreamName = config.Notifications.StreamName
	}
	if config.Notifications.SubjectPrefix != "" {
		nCfg.SubjectPrefix = config.Notifications.SubjectPrefix
	}
	notifier, err := notify.NewDispatcher(nCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up notification dispatcher")
	}
	defer notifier.Close()

	services := setupServices(database, notifier)

	scheduler, err := setupScheduler(config, services)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Info().Msg("gridiron transaction engine running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
}
