package main

import (
	"context"
	"fmt"

	"wayfarer/internal/db"
	"wayfarer/internal/seed"
	"wayfarer/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed a user's catalog with sample documents",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "user-id",
			Aliases:  []string{"u"},
			Usage:    "ID of the user to seed documents for",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "Pretty-print the seeded records",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL; seeding the in-memory store is pointless")
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		documentRepo := store.NewDocumentRepository(pool)
		backend := documentRepo.ForUser(c.String("user-id"))

		logrus.Info("Seeding documents...")
		records, err := seed.SeedDocuments(ctx, backend)
		if err != nil {
			return fmt.Errorf("failed to seed documents: %w", err)
		}

		if len(records) == 0 {
			logrus.Info("Catalog already has documents, nothing seeded")
			return nil
		}

		logrus.WithField("count", len(records)).Info("Documents seeded successfully")

		if c.Bool("dump") {
			pp.Println(records)
		}

		return nil
	},
}
