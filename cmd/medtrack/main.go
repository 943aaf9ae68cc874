package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/medtrack-dev/medtrack/internal/config"
	"github.com/medtrack-dev/medtrack/internal/router"
	"github.com/medtrack-dev/medtrack/internal/timeutil"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := timeutil.Init(cfg.Timezone); err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	if err := db.ConnectDatabase(cfg.PostgresURI); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	if err := r.Run(":" + cfg.ListenPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
