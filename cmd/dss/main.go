package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/NickDriscoll/dss/internal/bot"
	"github.com/NickDriscoll/dss/internal/logging"
	_ "github.com/NickDriscoll/dss/internal/modules/sound_streamer"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/dss
var version = "dev"

func main() {
	envName := flag.StringP("env", "e", string(bot.EnvProduction), "environment to run in (prod|dev)")
	logLevel := flag.String("log-level", "", "override LOG_LEVEL (debug|info|warn|error)")
	logFormat := flag.String("log-format", "", "override LOG_FORMAT (json|text)")
	showVersion := flag.BoolP("version", "v", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("dss", version)
		return
	}

	// Log as JSON until the configured handler is known.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// A missing .env file is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	environment, err := bot.ParseEnvironment(*envName)
	if err != nil {
		slog.Error("invalid environment", "error", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := bot.LoadConfig(environment)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := setupLogging(cfg, *logLevel, *logFormat); err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.Info("starting Driscoll's Sound Streamer", "version", version, "environment", environment)

	// Create and configure bot
	b := bot.NewBot(cfg)
	b.LoadModules()

	// Start bot
	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed bot shutdown")
}

// setupLogging installs the default logger, letting flags override config.
func setupLogging(cfg *bot.Config, levelFlag, formatFlag string) error {
	levelName := cfg.LogLevel
	if levelFlag != "" {
		levelName = levelFlag
	}
	format := cfg.LogFormat
	if formatFlag != "" {
		format = formatFlag
	}

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	handler, err := logging.NewHandler(os.Stdout, format, level)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
