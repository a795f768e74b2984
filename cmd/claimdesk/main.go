package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pavemint/claimdesk/internal/claims/app"
)

func main() {
	// Load .env for local development; absent files are fine.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
