package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Alias1177/Inventory/internal/api/predictor"
	"github.com/Alias1177/Inventory/internal/batch"
	"github.com/Alias1177/Inventory/internal/config"
	"github.com/Alias1177/Inventory/internal/database"
	"github.com/Alias1177/Inventory/internal/notify"
)

// Runs the full prediction batch once and prints the summary. Interrupting
// the run reports whatever completed before the signal.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

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

	client := predictor.NewClient(predictor.ClientOptions{
		BaseURL:        cfg.PredictorBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	orchestrator := batch.New(batch.Options{
		Client:            client,
		Store:             db,
		InterRequestDelay: time.Duration(cfg.BatchDelayMs) * time.Millisecond,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := orchestrator.Run(ctx, batch.ProductIDs(cfg.BatchProductCount))

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		if notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID); err == nil {
			notifier.NotifyBatchCompleted(summary)
		} else {
			log.Warn().Err(err).Msg("Telegram notification skipped")
		}
	}

	if stats, err := db.GetPredictionStats(); err != nil {
		log.Error().Err(err).Msg("Failed to get prediction statistics")
	} else {
		log.Info().
			Int("total", stats.Total).
			Float64("success_rate", stats.SuccessRate).
			Interface("risk_distribution", stats.RiskDistribution).
			Msg("Database statistics")
	}

	if summary.FailedRequests > 0 && summary.SuccessfulRequests == 0 {
		os.Exit(1)
	}
}
