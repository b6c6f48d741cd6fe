package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfarer/internal/db"
	"wayfarer/internal/exchange"
	"wayfarer/internal/server"
	"wayfarer/internal/storage"
	"wayfarer/internal/store"
	"wayfarer/internal/weather"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		users     store.Users
		documents store.Documents
	)

	if config.DatabaseURL != "" {
		pool, err := db.Connect(ctx, config)
		if err != nil {
			return err
		}
		defer pool.Close()

		users = store.NewUserRepository(pool)
		documents = store.NewDocumentRepository(pool)
		logger.Info("using postgres store")
	} else {
		memoryUsers, err := store.NewMemoryUsersWithDefault("traveler@example.com", "travel-safe")
		if err != nil {
			return err
		}
		users = memoryUsers
		documents = store.NewMemoryDocuments()
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	var fileStorage *storage.S3Storage
	if config.S3BucketName != "" {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		fileStorage = storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3BucketName)
	}

	var weatherClient *weather.Client
	if config.OpenWeatherAPIKey != "" {
		weatherClient = weather.NewClient(config.OpenWeatherAPIKey)
	}

	var exchangeClient *exchange.Client
	if config.ExchangeRateAPIKey != "" {
		exchangeClient = exchange.NewClient(config.ExchangeRateAPIKey)
	}

	srv, err := server.New(
		config,
		logger,
		users,
		documents,
		fileStorage,
		weatherClient,
		exchangeClient,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
