package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"store_rating_v1/internal/config"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/internal/seed"
	"store_rating_v1/pkg/credential"
	"store_rating_v1/pkg/database"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := config.NewLogger(cfg.Log)

	db, err := database.InitDB(database.Options{DSN: cfg.Database.DSN, LogSQL: cfg.Database.LogSQL}, log, model.AllModels()...)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	seeder := seed.NewSeeder(
		repository.NewUserRepository(db),
		repository.NewStoreRepository(db),
		repository.NewRatingRepository(db),
		credential.NewPasswordHasher(cfg.Auth.BcryptCost),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := seeder.Run(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
