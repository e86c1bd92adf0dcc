package main

import (
	"fmt"
	"log"
	"os"

	"aptilab/internal/config"
	"aptilab/internal/database"
	"aptilab/internal/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	steps := pflag.IntP("steps", "n", 1, "number of migrations to roll back with down")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|version] [--steps N]\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	command := "up"
	if pflag.NArg() > 0 {
		command = pflag.Arg(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXMySQLDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	mg, err := database.NewMigrator(db.DB)
	if err != nil {
		l.Fatal("Failed to prepare migrations", zap.Error(err))
	}

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down(*steps)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = mg.Version()
		if err == nil {
			fmt.Printf("version %d (dirty=%t)\n", v, dirty)
		}
	default:
		pflag.Usage()
		os.Exit(2)
	}
	if err != nil {
		l.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}
