package main

import (
	"os"

	"github.com/okanyildiz/schoolroster/internal/pkg/logger"
	"github.com/okanyildiz/schoolroster/internal/server"
)

// @title School Roster API
// @version 1.0
// @description Roster management and academic year transitions for a volunteer-run school

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
