package service

import (
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/models"
)

// Mirror is the local copy of the remote table. Only the detector writes it;
// everyone else reads it through MirrorView.
type Mirror struct {
	mu      sync.RWMutex
	rows    map[string]models.WorldObject
	version uint64
}

func NewMirror() *Mirror {
	return &Mirror{rows: make(map[string]models.WorldObject)}
}

func (m *Mirror) Objects() []models.WorldObject {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objectsLocked()
}

func (m *Mirror) Lookup(id string) (models.WorldObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok {
		return models.WorldObject{}, false
	}
	return row.Clone(), true
}

func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

func (m *Mirror) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

func (m *Mirror) Fingerprint() fingerprint.Hash {
	return fingerprint.Of(m.Objects())
}

// Snapshot returns the mirrored set and the version it was taken at.
func (m *Mirror) Snapshot() ([]models.WorldObject, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objectsLocked(), m.version
}

func (m *Mirror) objectsLocked() []models.WorldObject {
	ids := slices.Sorted(maps.Keys(m.rows))
	out := make([]models.WorldObject, len(ids))
	for i, id := range ids {
		out[i] = m.rows[id].Clone()
	}
	return out
}

// apply updates the mirror with one confirmed row event. ok is false for
// events that change nothing, such as a delete of an unknown id.
func (m *Mirror) apply(ev models.RowEvent) (change models.MirrorChange, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Kind {
	case models.RowInserted, models.RowUpdated:
		if ev.Row == nil || ev.Row.ID != ev.ID {
			return models.MirrorChange{}, false
		}
		row := ev.Row.Clone()
		m.rows[ev.ID] = row
		m.version++
		obj := row.Clone()
		return models.MirrorChange{Kind: models.MirrorUpsert, ID: ev.ID, Object: &obj}, true

	case models.RowDeleted:
		if _, present := m.rows[ev.ID]; !present {
			return models.MirrorChange{}, false
		}
		delete(m.rows, ev.ID)
		m.version++
		return models.MirrorChange{Kind: models.MirrorRemove, ID: ev.ID}, true

	default:
		return models.MirrorChange{}, false
	}
}

// reset replaces the whole mirror with rows.
func (m *Mirror) reset(rows []models.WorldObject) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = make(map[string]models.WorldObject, len(rows))
	for _, row := range rows {
		m.rows[row.ID] = row.Clone()
	}
	m.version++
}
