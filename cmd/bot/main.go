// Package main is the bot entry point: load config, assemble the app,
// run until SIGINT/SIGTERM with graceful shutdown.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/app"
	"github.com/pilot2254/contrast-bot-sub000/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== bot starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize the application")
	}
	defer application.DB.Close()

	application.Scheduler.Start(ctx)
	defer application.Scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Bot.Start(ctx); err != nil {
			log.WithError(err).Error("bot stopped with error")
			quit <- syscall.SIGTERM
		}
	}()

	log.Info("=== bot ready ===")

	sig := <-quit
	log.Infof("received %s, shutting down", sig)

	cancel()

	log.Info("=== bot stopped ===")
}

// setupLogging configures the log format before config is available.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
