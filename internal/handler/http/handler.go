package http

import (
	"time"

	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/validators"
	"github.com/MKhiriev/worldsync/internal/worlddb"
	"github.com/MKhiriev/worldsync/models"
)

// defaultLongPoll caps events requests when the configuration leaves the
// long-poll timeout unset.
const defaultLongPoll = 20 * time.Second

type Handler struct {
	world *worlddb.World

	module         string
	identityKey    string
	requestTimeout time.Duration
	longPoll       time.Duration
	devRoutes      bool

	validator validators.Validator
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(world *worlddb.World, cfg config.GatewayConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	longPoll := cfg.LongPollTimeout
	if longPoll <= 0 {
		longPoll = defaultLongPoll
	}

	logger.Info().
		Str("module", cfg.Module).
		Bool("identity_required", cfg.IdentityKey != "").
		Dur("long_poll", longPoll).
		Bool("dev_routes", cfg.DevRoutes).
		Msg("http handler created")

	return &Handler{
		world:          world,
		module:         cfg.Module,
		identityKey:    cfg.IdentityKey,
		requestTimeout: cfg.RequestTimeout,
		longPoll:       longPoll,
		devRoutes:      cfg.DevRoutes,
		validator:      validators.NewWorldObjectValidator(),
		buildInfo:      buildInfo,
		logger:         logger,
	}
}
