package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ignitte/induction/internal/pkg/logger"
	"github.com/ignitte/induction/internal/server"
)

// @title Ignitte Induction API
// @version 1.0
// @description API for the Ignitte club induction platform

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A .env file is optional; real deployments set the environment directly
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
