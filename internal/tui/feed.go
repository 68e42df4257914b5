package tui

import (
	"sync"

	"github.com/MKhiriev/worldsync/models"
)

// maxWarnings is the number of warnings the monitor keeps on screen.
const maxWarnings = 6

// Feed is the [service.Observer] behind the monitor. It never blocks the
// session: notifications collapse into one pending wake-up and the model
// re-reads the session state when it wakes.
type Feed struct {
	mu       sync.Mutex
	warnings []models.Warning
	changes  uint64

	wake chan struct{}
}

func NewFeed() *Feed {
	return &Feed{wake: make(chan struct{}, 1)}
}

func (f *Feed) StateChanged(models.SyncState) {
	f.notify()
}

func (f *Feed) MirrorChanged(models.MirrorChange) {
	f.mu.Lock()
	f.changes++
	f.mu.Unlock()
	f.notify()
}

func (f *Feed) Warning(w models.Warning) {
	f.mu.Lock()
	f.warnings = append(f.warnings, w)
	if len(f.warnings) > maxWarnings {
		f.warnings = f.warnings[len(f.warnings)-maxWarnings:]
	}
	f.mu.Unlock()
	f.notify()
}

// Warnings returns the retained warnings, oldest first.
func (f *Feed) Warnings() []models.Warning {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Warning(nil), f.warnings...)
}

// Changes returns the number of mirror changes seen so far.
func (f *Feed) Changes() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.changes
}

// Wake is signalled after any notification.
func (f *Feed) Wake() <-chan struct{} {
	return f.wake
}

func (f *Feed) notify() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}
