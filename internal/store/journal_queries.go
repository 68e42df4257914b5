// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/worldsync/models"
)

const resolutionJournalTable = "resolution_journal"

var resolutionJournalColumns = []string{
	"id",
	"action",
	"outcome",
	"started_at",
	"finished_at",
	"snapshot_fingerprint",
	"remote_fingerprint",
	"object_count",
	"error",
}

// SQLite uses ? placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildInsertResolutionQuery(r models.ResolutionRecord) (string, []any, error) {
	return sqlite.
		Insert(resolutionJournalTable).
		Columns(resolutionJournalColumns...).
		Values(
			r.ID,
			string(r.Action),
			string(r.Outcome),
			r.StartedAt.UTC(),
			r.FinishedAt.UTC(),
			r.SnapshotFingerprint,
			r.RemoteFingerprint,
			r.ObjectCount,
			r.Error,
		).
		ToSql()
}

func buildRecentResolutionsQuery(limit uint64) (string, []any, error) {
	return sqlite.
		Select(resolutionJournalColumns...).
		From(resolutionJournalTable).
		OrderBy("started_at DESC", "id DESC").
		Limit(limit).
		ToSql()
}
