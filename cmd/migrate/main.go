package main

import (
	"context"
	"log"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-account-ledger/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := postgres.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	log.Println("migrations applied successfully")
}
