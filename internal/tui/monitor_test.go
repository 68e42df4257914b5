package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/mock"
	"github.com/MKhiriev/worldsync/internal/service"
	"github.com/MKhiriev/worldsync/models"
)

type fakeSession struct {
	state       models.SyncState
	mirror      service.MirrorView
	resolver    service.Resolver
	pending     []models.PendingOp
	resolutions []models.ResolutionRecord
	journalErr  error
}

func (f *fakeSession) State() models.SyncState { return f.state }
func (f *fakeSession) Mirror() service.MirrorView { return f.mirror }
func (f *fakeSession) Pending() []models.PendingOp { return f.pending }
func (f *fakeSession) Resolver() service.Resolver { return f.resolver }

func (f *fakeSession) RecentResolutions(context.Context, uint64) ([]models.ResolutionRecord, error) {
	return f.resolutions, f.journalErr
}

func outOfSync() models.SyncState {
	return models.SyncState{
		Status:         models.StatusOutOfSync,
		LastComparison: models.ComparisonDivergent,
		Connected:      true,
		Divergence: &models.Divergence{
			OnlyInSnapshot: []string{"obj-1"},
			Differing:      []string{"obj-2"},
		},
		SnapshotFingerprint: "aaaaaaaaaaaaaaaaaaaaaaaa",
		RemoteFingerprint:   "bbbbbbbbbbbbbbbbbbbbbbbb",
	}
}

type monitorFixture struct {
	session  *fakeSession
	mirror   *mock.MockMirrorView
	resolver *mock.MockResolver
	feed     *Feed
}

func newMonitorFixture(t *testing.T, state models.SyncState) (*monitorFixture, monitorModel) {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &monitorFixture{
		mirror:   mock.NewMockMirrorView(ctrl),
		resolver: mock.NewMockResolver(ctrl),
		feed:     NewFeed(),
	}
	f.session = &fakeSession{state: state, mirror: f.mirror, resolver: f.resolver}

	f.mirror.EXPECT().Len().Return(3).AnyTimes()
	f.mirror.EXPECT().Fingerprint().Return(fingerprint.Of(nil)).AnyTimes()

	m := newMonitorModel(context.Background(), f.session, f.feed, models.NewAppBuildInfo("1.0.0", "", ""))
	m = update(t, m, m.cmdRefresh()())
	return f, m
}

func update(t *testing.T, m monitorModel, msg tea.Msg) monitorModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(monitorModel)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m monitorModel, k string) (monitorModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(monitorModel), cmd
}

func TestFeed_CoalescesAndKeepsLatestWarnings(t *testing.T) {
	f := NewFeed()

	f.StateChanged(models.SyncState{})
	f.MirrorChanged(models.MirrorChange{})
	for i := range maxWarnings + 2 {
		f.Warning(models.Warning{Kind: models.WarningPendingTimeout, Message: fmt.Sprint(i)})
	}

	select {
	case <-f.Wake():
	default:
		t.Fatal("expected a pending wake-up")
	}
	select {
	case <-f.Wake():
		t.Fatal("wake-ups must collapse into one")
	default:
	}

	warnings := f.Warnings()
	require.Len(t, warnings, maxWarnings)
	assert.Equal(t, "2", warnings[0].Message)
	assert.Equal(t, uint64(1), f.Changes())
}

func TestMonitor_RendersDivergence(t *testing.T) {
	f, m := newMonitorFixture(t, outOfSync())
	f.feed.Warning(models.Warning{Kind: models.WarningCorruptSnapshot, Message: "snapshot moved aside", At: time.Now()})

	view := m.View()

	assert.Contains(t, view, "OUT OF SYNC")
	assert.Contains(t, view, "only in snapshot (1): obj-1")
	assert.Contains(t, view, "differing (1): obj-2")
	assert.Contains(t, view, "Objects: 3")
	assert.Contains(t, view, "aaaaaaaaaaaaa...")
	assert.Contains(t, view, "snapshot moved aside")
	assert.Contains(t, view, "s: accept snapshot")
}

func TestMonitor_InSyncHidesResolution(t *testing.T) {
	_, m := newMonitorFixture(t, models.SyncState{Status: models.StatusInSync, Connected: true})

	assert.Contains(t, m.View(), "IN SYNC")
	assert.NotContains(t, m.View(), "accept snapshot")

	m, _ = press(t, m, "s")
	assert.False(t, m.showConfirm)
	assert.Contains(t, m.status, "nothing to resolve")
}

func TestMonitor_AcceptSnapshotAfterConfirm(t *testing.T) {
	f, m := newMonitorFixture(t, outOfSync())
	f.resolver.EXPECT().AcceptSnapshot(gomock.Any()).
		Return(models.ResolutionRecord{Action: models.ActionAcceptSnapshot, Outcome: models.OutcomeSucceeded, ObjectCount: 2}, nil)

	m, cmd := press(t, m, "s")
	require.True(t, m.showConfirm)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Accept snapshot?")

	m, cmd = press(t, m, "y")
	require.NotNil(t, cmd)
	assert.False(t, m.showConfirm)
	assert.True(t, m.resolving)

	done, ok := cmd().(resolutionDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	f.session.state = models.SyncState{Status: models.StatusInSync, Connected: true}
	m = update(t, m, done)
	assert.False(t, m.resolving)
	assert.Equal(t, "accept_snapshot succeeded, 2 objects", m.status)
}

func TestMonitor_CancelConfirm(t *testing.T) {
	_, m := newMonitorFixture(t, outOfSync())

	m, _ = press(t, m, "r")
	require.True(t, m.showConfirm)
	assert.Equal(t, models.ActionAcceptRemote, m.confirm.action)

	m, _ = press(t, m, "q")
	assert.True(t, m.showConfirm, "q does not quit over the confirmation")
	assert.False(t, m.quitByUser)

	m, cmd := press(t, m, "esc")
	assert.False(t, m.showConfirm)
	assert.Nil(t, cmd)
}

func TestMonitor_ResolutionFailureShowsError(t *testing.T) {
	f, m := newMonitorFixture(t, outOfSync())
	f.resolver.EXPECT().AcceptSnapshot(gomock.Any()).
		Return(models.ResolutionRecord{}, fmt.Errorf("%w: %w", service.ErrResolutionFailed, service.ErrNoUsableSnapshot))

	m, _ = press(t, m, "s")
	m, cmd := press(t, m, "enter")
	m = update(t, m, cmd())

	require.True(t, m.showError)
	assert.Contains(t, m.View(), "No usable snapshot on disk")

	m, _ = press(t, m, "esc")
	assert.False(t, m.showError)
}

func TestMonitor_CopyReport(t *testing.T) {
	orig := writeClipboard
	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	_, m := newMonitorFixture(t, outOfSync())

	m, cmd := press(t, m, "c")
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, copiedMsg{}, msg)
	assert.Equal(t, outOfSync().Divergence.Report(), copied)

	m = update(t, m, msg)
	assert.Equal(t, "Divergence report copied", m.status)
}

func TestMonitor_CopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	t.Cleanup(func() { writeClipboard = orig })

	_, m := newMonitorFixture(t, outOfSync())

	_, cmd := press(t, m, "c")
	msg, ok := cmd().(copiedMsg)
	require.True(t, ok)
	assert.ErrorContains(t, msg.err, "no clipboard utility")
}

func TestMonitor_ActivityRefreshes(t *testing.T) {
	f, m := newMonitorFixture(t, models.SyncState{Status: models.StatusSyncing})
	assert.Contains(t, m.View(), "SYNCING")

	f.session.state = outOfSync()
	f.session.pending = []models.PendingOp{{ID: "op-1"}}
	f.session.resolutions = []models.ResolutionRecord{{
		Action: models.ActionAcceptRemote, Outcome: models.OutcomeFailed, StartedAt: time.Now(),
	}}

	m = update(t, m, m.cmdRefresh()())

	assert.Equal(t, 1, m.pending)
	assert.Contains(t, m.View(), "OUT OF SYNC")
	assert.Contains(t, m.View(), "Recent resolutions")
	assert.Contains(t, m.View(), "accept_remote")
}

func TestMonitor_WaitForActivity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	feed := NewFeed()
	m := newMonitorModel(ctx, &fakeSession{}, feed, models.AppBuildInfo{})

	feed.StateChanged(models.SyncState{})
	assert.Equal(t, activityMsg{}, m.cmdWaitForActivity()())

	cancel()
	assert.Nil(t, m.cmdWaitForActivity()())
}

func TestMonitor_BuildInfoAndQuit(t *testing.T) {
	_, m := newMonitorFixture(t, outOfSync())

	m, _ = press(t, m, "v")
	assert.Contains(t, m.View(), "Version: 1.0.0")
	m, _ = press(t, m, "esc")
	assert.False(t, m.showBuildInfo)

	m, cmd := press(t, m, "q")
	assert.True(t, m.quitByUser)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHumanizeError(t *testing.T) {
	assert.Equal(t, "", humanizeError(nil))
	assert.Equal(t, "A resolution is already running", humanizeError(service.ErrResolutionInProgress))
	assert.Equal(t, "Network unavailable or remote store down", humanizeError(errors.New("dial tcp 127.0.0.1:3000: connection refused")))
	assert.Equal(t, "boom", humanizeError(errors.New("boom")))
}
