package service

import (
	"context"
	"time"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/internal/store"
	"github.com/MKhiriev/worldsync/models"
)

// recheckRequester asks the detector loop for a fingerprint comparison.
type recheckRequester interface {
	RequestRecheck()
}

// Detector is the single consumer of the remote message stream. It is the
// only writer of the mirror and the only place fingerprints are recomputed.
type Detector struct {
	mirror   *Mirror
	tracker  *Tracker
	state    *StateMachine
	writer   SnapshotWriter
	observer Observer

	recheck chan struct{}
	now     func() time.Time
	logger  *logger.Logger
}

func NewDetector(mirror *Mirror, tracker *Tracker, state *StateMachine, writer SnapshotWriter, observer Observer, log *logger.Logger) *Detector {
	return &Detector{
		mirror:   mirror,
		tracker:  tracker,
		state:    state,
		writer:   writer,
		observer: observer,
		recheck:  make(chan struct{}, 1),
		now:      time.Now,
		logger:   log,
	}
}

// RequestRecheck schedules a comparison on the detector goroutine. Requests
// made while one is queued are merged.
func (d *Detector) RequestRecheck() {
	select {
	case d.recheck <- struct{}{}:
	default:
	}
}

// Run processes messages in delivery order until ctx is done or the stream
// is closed.
func (d *Detector) Run(ctx context.Context, messages <-chan models.RemoteMessage) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-messages:
			if !ok {
				d.logger.Info().Str("func", "Detector.Run").Msg("remote stream closed")
				return nil
			}
			d.handle(msg)

		case <-d.recheck:
			d.recheckNow()
		}
	}
}

func (d *Detector) handle(msg models.RemoteMessage) {
	switch msg.Kind {
	case models.MessageInitialRows:
		d.handleInitialRows(msg.Rows)
	case models.MessageRowEvent:
		d.handleEvent(msg.Event)
	case models.MessageDisconnected:
		d.handleDisconnected(msg.Err)
	default:
		d.logger.Warn().Str("func", "Detector.handle").Int("kind", int(msg.Kind)).Msg("unknown remote message")
	}
}

// handleInitialRows re-baselines on a fresh subscription. Ops whose expected
// state already holds are credited, and the comparison runs once the mirror
// is settled.
func (d *Detector) handleInitialRows(rows []models.WorldObject) {
	d.state.BeginRebaseline()
	d.mirror.reset(rows)
	d.observer.MirrorChanged(models.MirrorChange{Kind: models.MirrorReset})

	committed := d.tracker.MatchState(d.mirror.Lookup)
	live := d.tracker.Intents()
	allowed := live
	for _, op := range committed {
		allowed = allowed.With(op.TargetID, op.Expected)
		metrics.CommitsMatchedTotal.WithLabelValues(op.Kind.String()).Inc()
	}

	objects, version := d.mirror.Snapshot()
	st := d.state.Settle(objects, allowed)
	d.state.SetConnected(true)

	if len(committed) > 0 && st.Status == models.StatusInSync {
		d.commit(objects, version, live)
	}

	d.logger.Info().
		Str("func", "Detector.handleInitialRows").
		Int("rows", len(rows)).
		Int("credited", len(committed)).
		Str("status", st.Status.String()).
		Msg("subscription settled")
}

func (d *Detector) handleEvent(ev models.RowEvent) {
	if change, ok := d.mirror.apply(ev); ok {
		d.observer.MirrorChanged(change)
	}

	op, matched := d.tracker.TryMatch(ev)
	if !matched {
		metrics.UnmatchedEventsTotal.WithLabelValues(ev.Kind.String()).Inc()
		d.recheckNow()
		return
	}

	metrics.CommitsMatchedTotal.WithLabelValues(op.Kind.String()).Inc()
	d.logger.Debug().
		Str("func", "Detector.handleEvent").
		Str("op_id", op.ID).
		Str("target_id", op.TargetID).
		Uint64("seq", ev.Seq).
		Msg("commit confirmed")

	// the baseline does not hold the commit yet, so its row is allowed for
	// the comparison that decides whether it may be written
	objects, version := d.mirror.Snapshot()
	live := d.tracker.Intents()
	st := d.state.Recheck(objects, live.With(op.TargetID, op.Expected))
	if st.Status == models.StatusInSync {
		d.commit(objects, version, live)
	}
}

func (d *Detector) handleDisconnected(err error) {
	d.state.SetConnected(false)

	msg := "remote store disconnected"
	if err != nil {
		msg += ": " + err.Error()
	}
	d.observer.Warning(models.Warning{Kind: models.WarningConnectivity, Message: msg, At: d.now()})
}

// commit advances the baseline to the confirmed part of the mirrored set and
// hands it to the writer.
func (d *Detector) commit(objects []models.WorldObject, version uint64, live IntentStates) {
	payload := d.state.CommitMatched(objects, live)
	d.writer.Request(store.Payload{Version: version, Objects: payload})
}

func (d *Detector) recheckNow() {
	d.state.Recheck(d.mirror.Objects(), d.tracker.Intents())
}
