package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"campdirectory/cmd/app"
	"campdirectory/internal/config"
	"campdirectory/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	if cfg.JWTSecretKey == "" {
		logrus.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to start: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"port":        cfg.ServerPort,
		"database":    cfg.DB.DbNAME,
		"storage":     cfg.Storage.Driver,
	}).Info("Starting campdirectory API")

	runErr := a.Run(ctx)
	if err := a.Close(); err != nil {
		logrus.WithError(err).Error("Failed to release resources")
	}
	if runErr != nil {
		logrus.Fatal(runErr)
	}
}
