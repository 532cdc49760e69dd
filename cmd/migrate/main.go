package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/mverner/teambook/internal/config"
	"github.com/mverner/teambook/internal/repositories/repomanager"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	log.Println("migrations applied")
}
