// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// SyncStatus is the state of the sync state machine. It is a single
// enumeration so that impossible flag combinations cannot be represented.
type SyncStatus int

const (
	// StatusSyncing is the initial and re-baseline state; edits are blocked
	// until the subscription settles.
	StatusSyncing SyncStatus = iota
	// StatusInSync means the mirrored remote set and the snapshot agree.
	StatusInSync
	// StatusOutOfSync means they disagree; only a resolution can leave it.
	StatusOutOfSync
)

func (s SyncStatus) String() string {
	switch s {
	case StatusSyncing:
		return "syncing"
	case StatusInSync:
		return "in_sync"
	case StatusOutOfSync:
		return "out_of_sync"
	default:
		return fmt.Sprintf("SyncStatus(%d)", int(s))
	}
}

func (s SyncStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ComparisonResult is the outcome of comparing two fingerprints.
type ComparisonResult int

const (
	ComparisonUnknown ComparisonResult = iota
	ComparisonMatch
	ComparisonDivergent
)

func (c ComparisonResult) String() string {
	switch c {
	case ComparisonMatch:
		return "match"
	case ComparisonDivergent:
		return "divergent"
	default:
		return "unknown"
	}
}

func (c ComparisonResult) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Divergence summarizes how a snapshot set and a remote set differ, by id.
// Every slice is sorted ascending.
type Divergence struct {
	OnlyInSnapshot []string `json:"only_in_snapshot"`
	OnlyInRemote   []string `json:"only_in_remote"`
	Differing      []string `json:"differing"`
}

// Empty reports whether no difference was found.
func (d Divergence) Empty() bool {
	return len(d.OnlyInSnapshot) == 0 && len(d.OnlyInRemote) == 0 && len(d.Differing) == 0
}

// IDs returns every id named by d.
func (d Divergence) IDs() []string {
	out := make([]string, 0, len(d.OnlyInSnapshot)+len(d.OnlyInRemote)+len(d.Differing))
	out = append(out, d.OnlyInSnapshot...)
	out = append(out, d.OnlyInRemote...)
	return append(out, d.Differing...)
}

// Report renders d as plain text for display or copying.
func (d Divergence) Report() string {
	var b strings.Builder
	section := func(title string, ids []string) {
		fmt.Fprintf(&b, "%s (%d)\n", title, len(ids))
		for _, id := range ids {
			fmt.Fprintf(&b, "  %s\n", id)
		}
	}
	section("only in snapshot", d.OnlyInSnapshot)
	section("only in remote", d.OnlyInRemote)
	section("differing", d.Differing)
	return b.String()
}

// SyncState is the externally visible state of synchronization.
type SyncState struct {
	Status         SyncStatus       `json:"status"`
	LastComparison ComparisonResult `json:"last_comparison"`
	Divergence     *Divergence      `json:"divergence,omitempty"`

	// Connected is false while the remote subscription is lost. Losing the
	// connection never changes Status by itself.
	Connected bool `json:"connected"`

	// Resolving is true while a resolution action runs.
	Resolving bool `json:"resolving"`

	SnapshotFingerprint string `json:"snapshot_fingerprint"`
	RemoteFingerprint   string `json:"remote_fingerprint"`
}

// EditsAllowed reports whether destructive edit requests may be forwarded.
func (s SyncState) EditsAllowed() bool {
	return s.Status == StatusInSync && !s.Resolving
}
