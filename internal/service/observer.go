package service

import (
	"sync"

	"github.com/MKhiriev/worldsync/models"
)

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) StateChanged(models.SyncState)    {}
func (NopObserver) MirrorChanged(models.MirrorChange) {}
func (NopObserver) Warning(models.Warning)            {}

// ObserverHub fans notifications out to every attached observer in the
// order they were attached.
type ObserverHub struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewObserverHub(observers ...Observer) *ObserverHub {
	return &ObserverHub{observers: observers}
}

// Attach adds o to the hub.
func (h *ObserverHub) Attach(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, o)
}

func (h *ObserverHub) StateChanged(state models.SyncState) {
	for _, o := range h.snapshot() {
		o.StateChanged(state)
	}
}

func (h *ObserverHub) MirrorChanged(change models.MirrorChange) {
	for _, o := range h.snapshot() {
		o.MirrorChanged(change)
	}
}

func (h *ObserverHub) Warning(warning models.Warning) {
	for _, o := range h.snapshot() {
		o.Warning(warning)
	}
}

func (h *ObserverHub) snapshot() []Observer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.observers
}
