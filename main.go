package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/scoutlabs/web3scout/internal/config"
	"github.com/scoutlabs/web3scout/internal/lexicon"
	"github.com/scoutlabs/web3scout/internal/needs"
	"github.com/scoutlabs/web3scout/internal/scanner"
	"github.com/scoutlabs/web3scout/internal/scoring"
	"github.com/scoutlabs/web3scout/internal/store"
	"github.com/scoutlabs/web3scout/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load lexicon")
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	bot, err := telegram.NewBot(cfg.TelegramToken, db, cfg.DispatchRate, cfg.SuppressCriticalAlerts, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create telegram bot")
	}
	bot.Start(ctx)

	communityScanner := scanner.New(cfg, db, bot, scoring.NewEngine(lex), needs.NewDeriver(lex), logger)

	logger.Info("Starting Web3 Scout...")
	if err := communityScanner.Run(ctx); err != nil {
		logger.WithError(err).Error("Scanner stopped with error")
	}
	logger.Info("Web3 Scout stopped gracefully")
}
