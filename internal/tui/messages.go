package tui

import (
	"github.com/MKhiriev/worldsync/models"
)

// activityMsg is produced when the feed wakes up.
type activityMsg struct{}

type refreshedMsg struct {
	state       models.SyncState
	objects     int
	fingerprint string
	pending     int
	resolutions []models.ResolutionRecord
	err         error
}

type resolutionDoneMsg struct {
	action models.ResolutionAction
	record models.ResolutionRecord
	err    error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
