package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"trading_journal/cmd"
	"trading_journal/config"
	"trading_journal/db"
	"trading_journal/logger"
)

func main() {
	// Set up logging
	// Define a flag for log level
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error (defaults to TJ_LOG_LEVEL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *logLevel == "" {
		logLevel = &cfg.LogLevel
	}
	logger.InitLogger(logLevel)

	// Initialize database
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	app := cmd.NewApp(cfg, store)
	cmd.Register(subcommands.DefaultCommander, app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := subcommands.Execute(ctx)
	stop()
	app.Close()

	if err := store.Close(); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}
	logger.Sync()
	os.Exit(int(status))
}
