package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Alias1177/Inventory/internal/api/predictor"
	"github.com/Alias1177/Inventory/internal/batch"
	"github.com/Alias1177/Inventory/internal/catalog"
	"github.com/Alias1177/Inventory/internal/config"
	"github.com/Alias1177/Inventory/internal/database"
	"github.com/Alias1177/Inventory/internal/notify"
	httpclient "github.com/Alias1177/Inventory/internal/platform/http"
	"github.com/Alias1177/Inventory/internal/server"
	"github.com/Alias1177/Inventory/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	predictorClient := predictor.NewClient(predictor.ClientOptions{
		BaseURL:        cfg.PredictorBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	catalogService := catalog.New(cfg.CatalogFeedURL, httpclient.NewClient(httpclient.ClientOptions{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}))

	var notifier models.BatchNotifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram notifications disabled")
		} else {
			notifier = n
		}
	}

	orchestrator := batch.New(batch.Options{
		Client:            predictorClient,
		Store:             db,
		InterRequestDelay: time.Duration(cfg.BatchDelayMs) * time.Millisecond,
	})

	srv := server.New(server.Options{
		Orchestrator: orchestrator,
		Store:        db,
		Catalog:      catalogService,
		Notifier:     notifier,
		BatchSize:    cfg.BatchProductCount,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("Inventory prediction server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
