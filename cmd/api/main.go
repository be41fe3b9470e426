package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/unigrade/backend/internal/server"
)

// @title           Unigrade API
// @version         1.0
// @description     Academic records service: course catalog, enrollment ledger, GPA engine and target GPA planning.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
