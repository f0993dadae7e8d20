package main

import (
	"flag"
	"log"

	"lxp-core/internal/config"
	"lxp-core/internal/database"
	"lxp-core/internal/logger"
)

func main() {
	var down bool
	var dir string
	flag.BoolVar(&down, "down", false, "roll back the most recent migration instead of applying pending ones")
	flag.StringVar(&dir, "dir", "database/migrations", "path to the migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	l := logger.Get()
	defer l.Sync()

	dsn := cfg.GetDSN()

	if down {
		if err := database.RollbackLastMigration(dsn, dir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		l.Info("Rolled back last migration")
		return
	}

	if err := database.RunMigrations(dsn, dir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	l.Info("Migrations applied")
}
