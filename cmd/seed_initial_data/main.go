package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"aptilab/internal/config"
	"aptilab/internal/database"
	"aptilab/internal/logger"
	"aptilab/internal/repository"
	"aptilab/internal/seed"
	"aptilab/internal/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	bankPath := pflag.String("bank", "", "question bank JSON file (defaults to the embedded bank)")
	migrate := pflag.Bool("migrate", true, "apply schema migrations before seeding")
	pflag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXMySQLDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *migrate {
		if err := database.RunMigrations(db.DB); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	var bank *seed.Bank
	if *bankPath != "" {
		log.Info("Loading question bank from file", zap.String("path", *bankPath))
		bank, err = seed.LoadBank(os.DirFS(filepath.Dir(*bankPath)), filepath.Base(*bankPath))
	} else {
		bank, err = seed.DefaultBank()
	}
	if err != nil {
		log.Fatal("Failed to load question bank", zap.Error(err))
	}

	seeder := service.NewSeedService(bank, repository.NewQuestionDatabaseAdapter(db), repository.NewTransactionManagerAdapter(db))
	inserted, err := seeder.EnsureQuestionBank(ctx)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	for topic, n := range inserted {
		log.Info("Topic seeded", zap.String("topic", topic), zap.Int("inserted", n))
	}
	log.Info("Initial data seeding process completed.")
}
