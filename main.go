package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/database"
	server "github.com/mauv0809/pitchside/internal/http"
	"github.com/mauv0809/pitchside/internal/journal"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/notifier/slack"
	"github.com/mauv0809/pitchside/internal/orchestrator"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/selection"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	cfg.SetupLogging()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	client := backend.NewClient(cfg.APIURL, cfg.RequestTimeout)
	attemptJournal := journal.New(db)

	sinks := []orchestrator.Sink{attemptJournal}
	if cfg.Slack.Enabled() {
		sinks = append(sinks, notifier.Sink(slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc), false))
	} else {
		log.Info("Slack notifications disabled; SLACK_BOT_TOKEN or SLACK_CHANNEL_ID not set")
	}
	if cfg.PubSub.Enabled() {
		publisher, err := pubsub.New(context.Background(), cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close pubsub client", "error", err)
			}
		}()
		sinks = append(sinks, pubsub.Sink(publisher, metricsSvc))
	} else {
		log.Info("Outcome publishing disabled; GCP_PROJECT or PUBSUB_TOPIC not set")
	}

	o := orchestrator.New(client, selection.NewStore(), orchestrator.Options{
		Debounce:       cfg.Debounce,
		RevealDelay:    cfg.RevealDelay,
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        metricsSvc,
		Sinks:          sinks,
	})
	defer o.Close()

	// The team list is fetched once per session. A backend that is still
	// starting up is retried lazily by GET /teams.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if _, err := o.LoadTeams(ctx); err != nil {
		log.Warn("Team list not loaded at startup", "error", err)
	}
	cancel()

	s := server.NewServer(o, client, attemptJournal, metricsSvc, metricsHandler)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "api", cfg.APIURL)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
