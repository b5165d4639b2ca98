package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-api/api"
	"github.com/rpupo63/blog-api/config"
	"github.com/rpupo63/blog-api/database"
	"github.com/rpupo63/blog-api/services"
)

func main() {
	settings := config.Load()
	setupLogger(settings)

	log.Info().Str("database", settings.DatabaseName).Msg("Initializing app...")

	client, err := database.Connect(context.Background(), settings.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(client, settings.DatabaseName)

	notifier := newNotifier(settings)

	// Buffered so the losing sender does not block after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(settings, currentDB, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	if errors.Is(fatalErr, http.ErrServerClosed) {
		log.Info().Msg("Server closed")
	} else {
		log.Info().Err(fatalErr).Msg("Closing server")
	}

	server.ShutdownGracefully(30 * time.Second)

	if err := notifier.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing notifier")
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := currentDB.Disconnect(disconnectCtx); err != nil {
		log.Error().Err(err).Msg("Error disconnecting from database")
	}
}

func setupLogger(settings config.Settings) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if settings.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", "blog-api").Logger()
}

// newNotifier falls back to a no-op notifier so a missing broker never blocks startup.
func newNotifier(settings config.Settings) services.Notifier {
	if !settings.PublishNotifications {
		log.Info().Msg("PUBLISH_NOTIFICATIONS is false, publish notifications disabled")
		return services.NoopNotifier{}
	}
	if settings.RabbitMQURL == "" {
		log.Info().Msg("RABBITMQ_URL not set, publish notifications disabled")
		return services.NoopNotifier{}
	}

	notifier, err := services.NewRabbitMQNotifier(settings.RabbitMQURL)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to set up RabbitMQ notifier, publish notifications disabled")
		return services.NoopNotifier{}
	}
	return notifier
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
