package main

import (
	"log"

	"github.com/joho/godotenv"

	"movie-recommendation-engine/config"
	"movie-recommendation-engine/server"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	srv := server.NewServer(cfg)

	log.Println("Movie Recommendation Engine starting...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
