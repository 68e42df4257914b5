// Package tui is the terminal sync monitor of the worldsync client. It shows
// the sync state, the divergence report and recent resolutions, and runs the
// two resolution actions on request.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/service"
	"github.com/MKhiriev/worldsync/models"
)

var ErrUserQuit = errors.New("user quit")

// SyncSession is the part of [service.Session] the monitor reads and drives.
type SyncSession interface {
	State() models.SyncState
	Mirror() service.MirrorView
	Pending() []models.PendingOp
	Resolver() service.Resolver
	RecentResolutions(ctx context.Context, limit uint64) ([]models.ResolutionRecord, error)
}

type TUI struct {
	session   SyncSession
	feed      *Feed
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New returns a monitor for session. feed must be attached to the session as
// an observer before the session runs so no notification is missed.
func New(session SyncSession, feed *Feed, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{session: session, feed: feed, buildInfo: buildInfo, logger: log}
}

// Run shows the monitor until the user quits or ctx is done. A user quit is
// reported as [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	model := newMonitorModel(ctx, t.session, t.feed, t.buildInfo)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	result, ok := finalModel.(monitorModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Info().Msg("monitor closed by user")
		return ErrUserQuit
	}
	return nil
}
