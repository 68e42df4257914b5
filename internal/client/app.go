package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/server"
	"github.com/MKhiriev/worldsync/internal/service"
	"github.com/MKhiriev/worldsync/internal/store"
	"github.com/MKhiriev/worldsync/internal/tui"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/internal/workers"
	"github.com/MKhiriev/worldsync/internal/worlddb"
	"github.com/MKhiriev/worldsync/models"
)

const statusWriteTimeout = 10 * time.Second

// App is the sync agent: one sync session, its monitor, and the optional
// status listener.
type App struct {
	storages *store.ClientStorages
	session  *service.Session
	ui       *tui.TUI
	status   server.Server
	logger   *logger.Logger
}

// NewApp opens the storages and wires the session to the configured remote
// store. The caller owns the returned App and must call Run.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	ids := utils.NewUUIDGenerator()

	remote, err := newRemoteStore(cfg.Adapter, ids.Generate(), log)
	if err != nil {
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	session := service.NewSession(*cfg, remote, storages.Snapshots, storages.Journal, ids, log)
	feed := tui.NewFeed()
	session.Observe(feed)

	app := &App{
		storages: storages,
		session:  session,
		ui:       tui.New(session, feed, buildInfo, log),
		logger:   log,
	}

	if cfg.App.MetricsAddress != "" {
		app.status, err = server.NewServer(NewStatusRouter(session, log), server.Options{
			Address:      cfg.App.MetricsAddress,
			ReadTimeout:  statusWriteTimeout,
			WriteTimeout: statusWriteTimeout,
		}, log)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("create status server: %w", err)
		}
	}

	return app, nil
}

// Run drives the session, the monitor and the status listener until ctx is
// done, the user quits, or one of them fails.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Error().Err(err).Msg("closing client storages")
		}
	}()

	ws := workers.New(a.logger).
		Add("session", workers.Func(a.session.Run)).
		Add("monitor", workers.Func(a.runMonitor))
	if a.status != nil {
		ws.Add("status", workers.Func(a.status.Serve))
	}

	return ws.Run(ctx)
}

func (a *App) runMonitor(ctx context.Context) error {
	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("user quit")
		return nil
	}
	return err
}

func newRemoteStore(cfg config.ClientAdapter, editorID string, log *logger.Logger) (adapter.RemoteStore, error) {
	switch cfg.Mode {
	case config.RemoteModeMemory:
		log.Warn().Msg("using in-process remote store, data is lost on exit")
		return adapter.NewMemoryRemoteStore(worlddb.New(log), log), nil
	case config.RemoteModeHTTP, "":
		return adapter.NewHTTPRemoteStore(cfg, editorID, log)
	default:
		return nil, fmt.Errorf("unknown remote mode %q", cfg.Mode)
	}
}
