// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/models"
)

const (
	backupSuffix  = ".bak"
	corruptSuffix = ".corrupt-"
	corruptStamp  = "20060102T150405.000000000Z"
)

// FileSnapshotStore keeps the snapshot as an indented JSON file. Every write
// goes through a temporary file in the same directory that is fsynced and
// renamed over the primary file, so readers observe either the previous or
// the new content and never a partial file.
type FileSnapshotStore struct {
	path       string
	keepBackup bool
	now        func() time.Time
	logger     *logger.Logger

	mu sync.Mutex
	// last is what the primary file currently holds; saved_at is reused when
	// a write carries the same fingerprint so that identical sets produce
	// identical bytes.
	last struct {
		valid       bool
		fingerprint fingerprint.Hash
		savedAt     time.Time
	}
}

// FileOption configures a FileSnapshotStore.
type FileOption func(*FileSnapshotStore)

// WithClock replaces the time source used for saved_at and quarantine names.
func WithClock(now func() time.Time) FileOption {
	return func(s *FileSnapshotStore) {
		s.now = now
	}
}

// WithBackup keeps the previous primary file as <path>.bak on every write.
func WithBackup(keep bool) FileOption {
	return func(s *FileSnapshotStore) {
		s.keepBackup = keep
	}
}

// NewFileSnapshotStore returns a store for the snapshot file at path. The
// parent directory is created on the first write.
func NewFileSnapshotStore(path string, log *logger.Logger, opts ...FileOption) *FileSnapshotStore {
	s := &FileSnapshotStore{
		path:   path,
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileSnapshotStore) Path() string {
	return s.path
}

// BackupPath returns the location of the secondary copy.
func (s *FileSnapshotStore) BackupPath() string {
	return s.path + backupSuffix
}

func (s *FileSnapshotStore) Write(ctx context.Context, objects []models.WorldObject) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	canon := fingerprint.Canonicalize(objects)
	fp := fingerprint.Of(canon)

	savedAt := s.now().UTC().Truncate(time.Millisecond)
	if s.last.valid && s.last.fingerprint == fp {
		savedAt = s.last.savedAt
	}

	snap := models.Snapshot{
		SchemaVersion: models.SnapshotSchemaVersion,
		SavedAt:       &savedAt,
		WorldObjects:  canon,
	}
	data, err := encodeSnapshot(snap)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return models.Snapshot{}, fmt.Errorf("create snapshot dir: %w", err)
	}

	if s.keepBackup {
		if err := s.backupPrimary(); err != nil {
			s.logger.Warn().Err(err).
				Str("func", "FileSnapshotStore.Write").
				Str("path", s.BackupPath()).
				Msg("failed to keep previous snapshot as backup")
		}
	}

	if err := syncedWriteFile(s.path, data, 0o644); err != nil {
		return models.Snapshot{}, fmt.Errorf("replace snapshot file: %w", err)
	}

	s.last.valid = true
	s.last.fingerprint = fp
	s.last.savedAt = savedAt

	s.logger.Debug().
		Str("func", "FileSnapshotStore.Write").
		Int("objects", len(canon)).
		Str("fingerprint", fp.Short()).
		Msg("snapshot written")

	return snap, nil
}

func (s *FileSnapshotStore) Read(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		quarantined, qErr := s.quarantine()
		if qErr != nil {
			s.logger.Error().Err(qErr).
				Str("func", "FileSnapshotStore.Read").
				Str("path", s.path).
				Msg("failed to move corrupt snapshot aside")
		} else {
			s.logger.Warn().Err(err).
				Str("func", "FileSnapshotStore.Read").
				Str("moved_to", quarantined).
				Msg("corrupt snapshot moved aside")
		}
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if snap.SavedAt != nil {
		s.last.valid = true
		s.last.fingerprint = fingerprint.Of(snap.WorldObjects)
		s.last.savedAt = *snap.SavedAt
	}

	return snap, nil
}

// quarantine renames the primary file to <path>.corrupt-<UTC timestamp> and
// returns the new name. The file is never deleted.
func (s *FileSnapshotStore) quarantine() (string, error) {
	target := s.path + corruptSuffix + s.now().UTC().Format(corruptStamp)
	if err := os.Rename(s.path, target); err != nil {
		return "", err
	}
	s.last.valid = false
	return target, nil
}

func (s *FileSnapshotStore) backupPrimary() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return syncedWriteFile(s.BackupPath(), data, 0o644)
}

func encodeSnapshot(snap models.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeSnapshot(data []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("parse: %w", err)
	}
	if snap.SchemaVersion != models.SnapshotSchemaVersion {
		return models.Snapshot{}, fmt.Errorf("unsupported schema_version %d", snap.SchemaVersion)
	}

	seen := make(map[string]struct{}, len(snap.WorldObjects))
	for _, obj := range snap.WorldObjects {
		if obj.ID == "" {
			return models.Snapshot{}, errors.New("world object without id")
		}
		if _, dup := seen[obj.ID]; dup {
			return models.Snapshot{}, fmt.Errorf("duplicate id %q", obj.ID)
		}
		seen[obj.ID] = struct{}{}
	}
	if snap.WorldObjects == nil {
		snap.WorldObjects = []models.WorldObject{}
	}
	return snap, nil
}

// syncedWriteFile writes data to a temporary file in the directory of path,
// fsyncs it and renames it over path. On any failure the temporary file is
// removed and path is left untouched.
func syncedWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true

	syncDir(dir)
	return nil
}

// syncDir makes a completed rename durable. Platforms that cannot fsync a
// directory are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
