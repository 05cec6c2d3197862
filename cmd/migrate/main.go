package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"course-compass/internal/config"
	"course-compass/internal/database"
	"course-compass/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations complete", zap.Int("applied", applied))
}
