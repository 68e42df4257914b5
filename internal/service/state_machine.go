// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/metrics"
	"github.com/MKhiriev/worldsync/models"
)

// StateMachine owns the SyncState and the committed baseline: the object set
// the snapshot file holds or is about to hold. Transitions are explicit
// methods; nothing else mutates the state.
//
//	Syncing   -> InSync | OutOfSync   Settle
//	InSync    -> Syncing              BeginRebaseline
//	InSync    -> OutOfSync            Recheck (divergent)
//	OutOfSync -> InSync               Resolve
type StateMachine struct {
	mu       sync.Mutex
	state    models.SyncState
	baseline []models.WorldObject
	baseFP   fingerprint.Hash

	// notifyMu keeps observer calls in transition order.
	notifyMu  sync.Mutex
	published models.SyncState
	onChange func(models.SyncState)

	logger *logger.Logger
}

// NewStateMachine starts in Syncing with an empty baseline. onChange, when
// non-nil, receives a copy of every new state.
func NewStateMachine(onChange func(models.SyncState), log *logger.Logger) *StateMachine {
	s := &StateMachine{
		state:    models.SyncState{Status: models.StatusSyncing},
		baseFP:   fingerprint.Of(nil),
		onChange: onChange,
		logger:   log,
	}
	s.state.SnapshotFingerprint = s.baseFP.String()
	metrics.SetSyncStatus(s.state.Status.String())
	return s
}

// State returns a copy of the current state.
func (s *StateMachine) State() models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Baseline returns a copy of the committed baseline.
func (s *StateMachine) Baseline() []models.WorldObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneObjects(s.baseline)
}

// LoadBaseline installs the snapshot read at startup. A missing or corrupt
// snapshot is loaded as an empty set.
func (s *StateMachine) LoadBaseline(objects []models.WorldObject) {
	s.mu.Lock()
	s.setBaselineLocked(objects)
	s.commit()
}

// SetConnected records the subscription link state. Losing the link never
// changes the status.
func (s *StateMachine) SetConnected(connected bool) {
	s.mu.Lock()
	if s.state.Connected == connected {
		s.mu.Unlock()
		return
	}
	s.state.Connected = connected
	if connected {
		metrics.RemoteConnected.Set(1)
	} else {
		metrics.RemoteConnected.Set(0)
	}
	s.commit()
}

// BeginRebaseline moves InSync back to Syncing while a fresh row set is
// applied. OutOfSync is kept.
func (s *StateMachine) BeginRebaseline() {
	s.mu.Lock()
	if s.state.Status != models.StatusInSync {
		s.mu.Unlock()
		return
	}
	s.state.Status = models.StatusSyncing
	s.commit()
}

// Settle compares the baseline with the first stable remote set after a
// (re)subscription. A differing row counts as a match when intents allow it.
// OutOfSync stays OutOfSync.
func (s *StateMachine) Settle(remote []models.WorldObject, intents IntentStates) models.SyncState {
	s.mu.Lock()
	divergent := s.compareLocked(remote, intents)
	if s.state.Status != models.StatusOutOfSync {
		if divergent {
			s.state.Status = models.StatusOutOfSync
		} else {
			s.state.Status = models.StatusInSync
		}
	}
	return s.commit()
}

// Recheck compares the baseline with the current remote set. A differing
// row is ignored only when it is one of the states the local intent on that
// id may produce, so an external change to an id with a live op still
// diverges. Recheck never leaves OutOfSync and is a no-op while Syncing.
func (s *StateMachine) Recheck(remote []models.WorldObject, intents IntentStates) models.SyncState {
	s.mu.Lock()
	if s.state.Status == models.StatusSyncing {
		st := copyState(s.state)
		s.mu.Unlock()
		return st
	}
	if s.compareLocked(remote, intents) && s.state.Status == models.StatusInSync {
		s.state.Status = models.StatusOutOfSync
		s.logger.Warn().
			Str("func", "StateMachine.Recheck").
			Str("snapshot", s.state.SnapshotFingerprint).
			Str("remote", s.state.RemoteFingerprint).
			Msg("snapshot and remote set diverged")
	}
	return s.commit()
}

// CommitMatched advances the baseline after a confirmed commit and returns
// the set to hand to the snapshot writer. Ids in intents are still in flight
// and keep their baseline row, so only confirmed state reaches the snapshot.
func (s *StateMachine) CommitMatched(remote []models.WorldObject, intents IntentStates) []models.WorldObject {
	s.mu.Lock()
	committed := committedSet(s.baseline, remote, intents)
	s.setBaselineLocked(committed)
	s.compareLocked(remote, intents)
	s.commit()
	return models.CloneObjects(committed)
}

// BeginResolution sets the resolution flag. It fails fast when a resolution
// already runs or the first subscription has not settled.
func (s *StateMachine) BeginResolution() error {
	s.mu.Lock()
	switch {
	case s.state.Resolving:
		s.mu.Unlock()
		return ErrResolutionInProgress
	case s.state.Status == models.StatusSyncing:
		s.mu.Unlock()
		return ErrNotSettled
	}
	s.state.Resolving = true
	s.commit()
	return nil
}

// EndResolution clears the resolution flag.
func (s *StateMachine) EndResolution() {
	s.mu.Lock()
	s.state.Resolving = false
	s.commit()
}

// Resolve installs baseline and moves to InSync if remote matches it. It is
// the only way out of OutOfSync.
func (s *StateMachine) Resolve(baseline, remote []models.WorldObject) error {
	baseFP := fingerprint.Of(baseline)
	remoteFP := fingerprint.Of(remote)
	if fingerprint.Compare(baseFP, remoteFP) != models.ComparisonMatch {
		d := fingerprint.Diff(baseline, remote)
		return fmt.Errorf("%w: snapshot %s, remote %s, %d ids differ",
			ErrFingerprintMismatch, baseFP.Short(), remoteFP.Short(), len(d.IDs()))
	}

	s.mu.Lock()
	s.setBaselineLocked(baseline)
	s.state.Status = models.StatusInSync
	s.state.LastComparison = models.ComparisonMatch
	s.state.Divergence = nil
	s.state.RemoteFingerprint = remoteFP.String()
	s.commit()

	s.logger.Info().
		Str("func", "StateMachine.Resolve").
		Str("fingerprint", baseFP.String()).
		Msg("sync state resolved")
	return nil
}

// Gate rejects edit requests the current state does not allow. Reads are
// never gated.
func (s *StateMachine) Gate(op models.OpKind) error {
	st := s.State()
	switch {
	case st.Resolving:
		return models.Reject(models.RejectBlockedResolving, op, "resolution in progress")
	case st.Status == models.StatusSyncing:
		return models.Reject(models.RejectBlockedSyncing, op, "waiting for the remote subscription")
	case st.Status == models.StatusOutOfSync:
		return models.Reject(models.RejectBlockedOutOfSync, op, "resolve the divergence first")
	}
	return nil
}

func (s *StateMachine) setBaselineLocked(objects []models.WorldObject) {
	s.baseline = fingerprint.Canonicalize(objects)
	s.baseFP = fingerprint.Of(s.baseline)
	s.state.SnapshotFingerprint = s.baseFP.String()
}

// compareLocked records the comparison of the baseline with remote and
// reports whether it is a divergence intents do not account for.
func (s *StateMachine) compareLocked(remote []models.WorldObject, intents IntentStates) bool {
	remoteFP := fingerprint.Of(remote)
	s.state.RemoteFingerprint = remoteFP.String()

	if fingerprint.Compare(s.baseFP, remoteFP) == models.ComparisonMatch {
		s.state.LastComparison = models.ComparisonMatch
		s.state.Divergence = nil
		return false
	}

	d := fingerprint.Diff(s.baseline, remote)
	s.state.LastComparison = models.ComparisonDivergent
	s.state.Divergence = &d

	rows := indexByID(remote)
	for _, id := range d.IDs() {
		var row *models.WorldObject
		if obj, ok := rows[id]; ok {
			row = &obj
		}
		if !intents.Allows(id, row) {
			return true
		}
	}
	return false
}

// committedSet is remote with every id in intents reverted to its baseline
// row, or left out when the baseline does not hold it.
func committedSet(baseline, remote []models.WorldObject, intents IntentStates) []models.WorldObject {
	if len(intents) == 0 {
		return models.CloneObjects(remote)
	}

	base := indexByID(baseline)
	out := make([]models.WorldObject, 0, len(remote))
	seen := make(map[string]struct{}, len(remote))
	for _, obj := range remote {
		seen[obj.ID] = struct{}{}
		if _, inFlight := intents[obj.ID]; !inFlight {
			out = append(out, obj.Clone())
			continue
		}
		if b, ok := base[obj.ID]; ok {
			out = append(out, b.Clone())
		}
	}
	for id := range intents {
		if _, ok := seen[id]; ok {
			continue
		}
		if b, ok := base[id]; ok {
			out = append(out, b.Clone())
		}
	}
	return fingerprint.Canonicalize(out)
}

func indexByID(objects []models.WorldObject) map[string]models.WorldObject {
	m := make(map[string]models.WorldObject, len(objects))
	for _, obj := range objects {
		m[obj.ID] = obj
	}
	return m
}

// commit publishes the state if it changed. It must be called with mu held
// and releases it.
func (s *StateMachine) commit() models.SyncState {
	st := copyState(s.state)
	if statesEqual(st, s.published) {
		s.mu.Unlock()
		return st
	}
	s.published = copyState(st)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	metrics.SetSyncStatus(st.Status.String())
	if s.onChange != nil {
		s.onChange(st)
	}
	return st
}

func statesEqual(a, b models.SyncState) bool {
	if a.Status != b.Status || a.LastComparison != b.LastComparison ||
		a.Connected != b.Connected || a.Resolving != b.Resolving ||
		a.SnapshotFingerprint != b.SnapshotFingerprint || a.RemoteFingerprint != b.RemoteFingerprint {
		return false
	}
	if a.Divergence == nil || b.Divergence == nil {
		return a.Divergence == b.Divergence
	}
	return slices.Equal(a.Divergence.OnlyInSnapshot, b.Divergence.OnlyInSnapshot) &&
		slices.Equal(a.Divergence.OnlyInRemote, b.Divergence.OnlyInRemote) &&
		slices.Equal(a.Divergence.Differing, b.Divergence.Differing)
}

func copyState(st models.SyncState) models.SyncState {
	if st.Divergence != nil {
		d := models.Divergence{
			OnlyInSnapshot: append([]string(nil), st.Divergence.OnlyInSnapshot...),
			OnlyInRemote:   append([]string(nil), st.Divergence.OnlyInRemote...),
			Differing:      append([]string(nil), st.Divergence.Differing...),
		}
		st.Divergence = &d
	}
	return st
}
