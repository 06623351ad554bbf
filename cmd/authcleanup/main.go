// Command authcleanup purges refresh sessions and one-time codes that can
// never be used again. Run it on a schedule (cron or similar).
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"giglog/internal/config"
	"giglog/internal/database"
	"giglog/internal/repository"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tokens, err := repository.NewRefreshTokenRepository(db).DeleteStale(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to delete stale refresh tokens")
	}
	codes, err := repository.NewAuthCodeRepository(db).DeleteStale(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to delete stale auth codes")
	}

	log.WithFields(logrus.Fields{
		"refresh_tokens": tokens,
		"auth_codes":     codes,
	}).Info("auth cleanup finished")
}
