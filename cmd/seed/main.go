package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/userboard/userboard/config"
	userapp "github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/domain/entity"
	"github.com/userboard/userboard/internal/infrastructure/mongodb"
	"github.com/userboard/userboard/pkg/helpers"
)

// Seeds a handful of demo users through the service layer so the same
// validation and normalization rules apply as on the API path.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	db, client, err := mongodb.Connect(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	col := db.Collection(cfg.UsersCollection)
	if err := mongodb.EnsureIndexes(context.Background(), col); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	svc := userapp.NewService(mongodb.NewUserRepository(col), logger)

	samples := []entity.User{
		{
			Username:    "ana",
			PhoneNumber: "1234567890",
			Email:       "ana@example.com",
			Company:     "Acme",
			Address: entity.Address{
				Street: "1 Demo Rd",
				City:   "Springfield",
				Zip:    "00001",
				Geo:    entity.GeoPoint{Lat: 40.71, Lng: -74.0},
			},
		},
		{
			Username:    "bram",
			PhoneNumber: "0987654321",
			Email:       "bram@example.com",
			Address: entity.Address{
				Street: "2 Demo Rd",
				City:   "Shelbyville",
				Zip:    "00002",
				Geo:    entity.GeoPoint{Lat: 51.5, Lng: -0.12},
			},
		},
		{
			Username:    "cleo",
			PhoneNumber: "5550001111",
			Email:       "cleo@example.com",
			Company:     "Globex",
			Address: entity.Address{
				Street: "3 Demo Rd",
				City:   "Ogdenville",
				Zip:    "00003",
				Geo:    entity.GeoPoint{Lat: -33.86, Lng: 151.2},
			},
		},
	}

	ctx := context.Background()
	for i := range samples {
		u := samples[i]
		created, err := svc.Create(ctx, &u)
		if errors.Is(err, userapp.ErrEmailTaken) {
			fmt.Printf("skipped %s: already seeded\n", u.Email)
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed %s: %v", u.Email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s\n", created.ID.Hex(), created.Email)
	}
}
