package main

import (
	"fmt"

	"github.com/MKhiriev/worldsync/internal/config"
	handler "github.com/MKhiriev/worldsync/internal/handler/http"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/server"
	"github.com/MKhiriev/worldsync/internal/worlddb"
	"github.com/MKhiriev/worldsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("worldsync-gateway")
	cfg, err := config.GetGatewayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	world := worlddb.New(log)
	h := handler.NewHandler(world, *cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	// long polls hold the response open up to LongPollTimeout
	srv, err := server.NewServer(h.Init(), server.Options{
		Address:      cfg.Address,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.LongPollTimeout + cfg.RequestTimeout,
		IdleTimeout:  2 * cfg.LongPollTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
