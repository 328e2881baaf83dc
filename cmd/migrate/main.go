package main

import (
	"context"

	migrations "roomly/internal/migrations/mongo"
	"roomly/pkg/config"

	"github.com/joho/godotenv"
)

const ServiceName = "migrate"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	cfg.Log.Info("Running Mongo migrations", "database", cfg.MongoDatabaseName)
	if err := migrations.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("All migrations applied successfully")
}
