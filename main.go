package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/matchday/internal/archive"
	"github.com/mauv0809/matchday/internal/commands"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/database"
	server "github.com/mauv0809/matchday/internal/http"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/notifier/slack"
	tgnotifier "github.com/mauv0809/matchday/internal/notifier/telegram"
	"github.com/mauv0809/matchday/internal/processor"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/mauv0809/matchday/internal/sheets"
	"github.com/mauv0809/matchday/internal/telegram"
	"github.com/mauv0809/matchday/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	usage := metrics.New(db)
	archiveStore := archive.New(db)

	var sheet sheets.Sink
	if cfg.SheetPath != "" {
		log.Info("Using spreadsheet for all-time statistics", "path", cfg.SheetPath)
		sheet = sheets.NewWorkbook(cfg.SheetPath)
	}

	router := notifier.NewRouter()
	var botAPI *tgbotapi.BotAPI
	if cfg.Telegram.Token != "" {
		botAPI, err = tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Fatalf("Failed to connect to Telegram: %s", err)
		}
		botAPI.Debug = cfg.Debug
		router.Register("tg", tgnotifier.NewNotifier(botAPI, metricsSvc))
		log.Info("Telegram enabled", "bot", botAPI.Self.UserName)
	}
	if cfg.Slack.Token != "" {
		router.Register("slack", slack.NewNotifier(cfg.Slack.Token, metricsSvc))
		log.Info("Slack enabled")
	}

	proc := processor.New(archiveStore, sheet, router, metricsSvc, usage)
	var (
		finisher processor.Finisher = proc
		psClient pubsub.PubSubClient
	)
	if cfg.PubSub.Enabled() {
		var psTeardown func()
		psClient, psTeardown, err = pubsub.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer psTeardown()
		finisher = processor.NewAsync(psClient)
		log.Info("Finishing tournaments through pubsub", "topic", cfg.PubSub.Topic)
	}

	dispatcher := commands.New(commands.Deps{
		Store:    tournament.NewMemoryStore(),
		Finisher: finisher,
		Sheet:    sheet,
		Archive:  archiveStore,
		Metrics:  metricsSvc,
		Usage:    usage,
		AdminIDs: cfg.AdminIDs,
		Location: cfg.Location,
	})

	s := server.NewServer(dispatcher, metricsSvc, metricsHandler, usage, cfg, proc, psClient)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server or the bot
	serverErrors := make(chan error, 2)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	if botAPI != nil {
		bot := telegram.NewBot(botAPI, dispatcher, router)
		go func() {
			if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				serverErrors <- err
			}
		}()
	}

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
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	} else {
		log.Info("Server gracefully stopped")
	}

	log.Info("Server process shutting down")
}
