package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/worldsync/models"
)

const (
	resolutionsShown = 5
	idsShown         = 8
	fingerprintShown = 16
	statusTTL        = 3 * time.Second
)

var writeClipboard = clipboard.WriteAll

type monitorModel struct {
	ctx       context.Context
	session   SyncSession
	feed      *Feed
	buildInfo models.AppBuildInfo
	spinner   spinner.Model

	state       models.SyncState
	objects     int
	fingerprint string
	pending     int
	resolutions []models.ResolutionRecord
	loaded      bool

	resolving     bool
	status        string
	showConfirm   bool
	confirm       confirmModel
	showError     bool
	errorOverlay  errorOverlayModel
	showBuildInfo bool

	quitByUser bool
}

func newMonitorModel(ctx context.Context, session SyncSession, feed *Feed, buildInfo models.AppBuildInfo) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return monitorModel{
		ctx:       ctx,
		session:   session,
		feed:      feed,
		buildInfo: buildInfo,
		spinner:   s,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRefresh(), m.cmdWaitForActivity())
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case activityMsg:
		return m, tea.Batch(m.cmdRefresh(), m.cmdWaitForActivity())

	case refreshedMsg:
		m.loaded = true
		m.state = msg.state
		m.objects = msg.objects
		m.fingerprint = msg.fingerprint
		m.pending = msg.pending
		if msg.err == nil {
			m.resolutions = msg.resolutions
		}
		return m, nil

	case resolutionDoneMsg:
		m.resolving = false
		if msg.err != nil {
			m.showError = true
			m.errorOverlay = errorOverlayModel{message: humanizeError(msg.err)}
			return m, m.cmdRefresh()
		}
		m.status = fmt.Sprintf("%s succeeded, %d objects", msg.action, msg.record.ObjectCount)
		return m, tea.Batch(m.cmdRefresh(), clearStatusAfter(statusTTL))

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Divergence report copied"
		}
		return m, clearStatusAfter(statusTTL)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m monitorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) && (msg.String() == "ctrl+c" || !m.showConfirm) {
		m.quitByUser = true
		return m, tea.Quit
	}

	switch {
	case m.showError:
		if key.Matches(msg, keys.cancel) || msg.String() == "enter" {
			m.showError = false
		}
		return m, nil

	case m.showBuildInfo:
		if key.Matches(msg, keys.cancel) || key.Matches(msg, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil

	case m.showConfirm:
		switch {
		case key.Matches(msg, keys.confirm):
			m.showConfirm = false
			m.resolving = true
			m.status = ""
			return m, m.cmdResolve(m.confirm.action)
		case key.Matches(msg, keys.cancel):
			m.showConfirm = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.acceptSnapshot):
		return m.askResolution(models.ActionAcceptSnapshot)
	case key.Matches(msg, keys.acceptRemote):
		return m.askResolution(models.ActionAcceptRemote)
	case key.Matches(msg, keys.copyReport):
		if m.state.Divergence == nil || m.state.Divergence.Empty() {
			m.status = "No divergence to copy"
			return m, clearStatusAfter(statusTTL)
		}
		return m, cmdCopy(m.state.Divergence.Report())
	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
	}
	return m, nil
}

func (m monitorModel) askResolution(action models.ResolutionAction) (tea.Model, tea.Cmd) {
	switch {
	case m.resolving || m.state.Resolving:
		m.status = "A resolution is already running"
		return m, clearStatusAfter(statusTTL)
	case m.state.Status != models.StatusOutOfSync:
		m.status = "World is not out of sync, nothing to resolve"
		return m, clearStatusAfter(statusTTL)
	}
	m.showConfirm = true
	m.confirm = confirmModel{action: action}
	return m, nil
}

func (m monitorModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		mirror := m.session.Mirror()
		resolutions, err := m.session.RecentResolutions(m.ctx, resolutionsShown)
		return refreshedMsg{
			state:       m.session.State(),
			objects:     mirror.Len(),
			fingerprint: mirror.Fingerprint().String(),
			pending:     len(m.session.Pending()),
			resolutions: resolutions,
			err:         err,
		}
	}
}

// cmdWaitForActivity blocks until the feed wakes up. It yields nothing once
// the monitor context is done.
func (m monitorModel) cmdWaitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.feed.Wake():
			return activityMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m monitorModel) cmdResolve(action models.ResolutionAction) tea.Cmd {
	return func() tea.Msg {
		resolver := m.session.Resolver()
		var (
			record models.ResolutionRecord
			err    error
		)
		switch action {
		case models.ActionAcceptSnapshot:
			record, err = resolver.AcceptSnapshot(m.ctx)
		default:
			record, err = resolver.AcceptRemote(m.ctx)
		}
		return resolutionDoneMsg{action: action, record: record, err: err}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m monitorModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	page := renderPage("WORLDSYNC · SYNC MONITOR", m.body(), m.hotKeys())
	switch {
	case m.showConfirm:
		page += "\n\n" + m.confirm.View()
	case m.showError:
		page += "\n\n" + m.errorOverlay.View()
	}
	return appStyle.Render(page)
}

func (m monitorModel) body() string {
	if !m.loaded {
		return m.spinner.View() + " Loading..."
	}

	var b strings.Builder

	b.WriteString("Status:  ")
	b.WriteString(statusBadge(m.state.Status))
	if m.state.Status == models.StatusSyncing || m.resolving || m.state.Resolving {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	if m.resolving || m.state.Resolving {
		b.WriteString(" resolving")
	}
	b.WriteString("\n")

	connection := "connected"
	if !m.state.Connected {
		connection = warningStyle.Render("disconnected")
	}
	fmt.Fprintf(&b, "Remote:  %s\n", connection)
	fmt.Fprintf(&b, "Objects: %d    Pending ops: %d\n", m.objects, m.pending)
	fmt.Fprintf(&b, "Remote fingerprint:   %s\n", fitText(orDash(m.state.RemoteFingerprint), fingerprintShown))
	fmt.Fprintf(&b, "Snapshot fingerprint: %s\n", fitText(orDash(m.state.SnapshotFingerprint), fingerprintShown))

	if d := m.state.Divergence; m.state.Status == models.StatusOutOfSync && d != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Divergence"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  only in snapshot (%d): %s\n", len(d.OnlyInSnapshot), listIDs(d.OnlyInSnapshot, idsShown))
		fmt.Fprintf(&b, "  only in remote (%d): %s\n", len(d.OnlyInRemote), listIDs(d.OnlyInRemote, idsShown))
		fmt.Fprintf(&b, "  differing (%d): %s\n", len(d.Differing), listIDs(d.Differing, idsShown))
		b.WriteString("  Edits are blocked until you resolve.\n")
	}

	if warnings := m.feed.Warnings(); len(warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Warnings"))
		b.WriteString("\n")
		for _, w := range warnings {
			line := fmt.Sprintf("  %s %s: %s", w.At.Format("15:04:05"), w.Kind, w.Message)
			b.WriteString(warningStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if len(m.resolutions) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent resolutions"))
		b.WriteString("\n")
		for _, r := range m.resolutions {
			fmt.Fprintf(&b, "  %s %-15s %-9s %d objects\n",
				r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Action, r.Outcome, r.ObjectCount)
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}

func (m monitorModel) hotKeys() string {
	if m.state.Status == models.StatusOutOfSync {
		return "s: accept snapshot   r: accept remote   c: copy report   v: version"
	}
	return "v: version"
}

func statusBadge(s models.SyncStatus) string {
	switch s {
	case models.StatusInSync:
		return inSyncBadge.Render("IN SYNC")
	case models.StatusOutOfSync:
		return outOfSyncBadge.Render("OUT OF SYNC")
	default:
		return syncingBadge.Render("SYNCING")
	}
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
