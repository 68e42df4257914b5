package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/models"
)

type resolutionJournal struct {
	*DB
	logger *logger.Logger
}

// NewResolutionJournal returns the SQLite-backed audit log of resolution
// attempts.
func NewResolutionJournal(db *DB, logger *logger.Logger) ResolutionJournal {
	return &resolutionJournal{
		DB:     db,
		logger: logger,
	}
}

func (j *resolutionJournal) Record(ctx context.Context, record models.ResolutionRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertResolutionQuery(record)
	if err != nil {
		log.Err(err).Str("func", "resolutionJournal.Record").Msg("failed to build insert query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = j.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "resolutionJournal.Record").
			Str("id", record.ID).
			Str("action", string(record.Action)).
			Msg("failed to insert resolution record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (j *resolutionJournal) Recent(ctx context.Context, limit uint64) ([]models.ResolutionRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecentResolutionsQuery(limit)
	if err != nil {
		log.Err(err).Str("func", "resolutionJournal.Recent").Msg("failed to build select query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := j.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "resolutionJournal.Recent").Msg("failed to query resolution records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.ResolutionRecord, 0, limit)
	for rows.Next() {
		var (
			r               models.ResolutionRecord
			action, outcome string
		)
		if err := rows.Scan(
			&r.ID,
			&action,
			&outcome,
			&r.StartedAt,
			&r.FinishedAt,
			&r.SnapshotFingerprint,
			&r.RemoteFingerprint,
			&r.ObjectCount,
			&r.Error,
		); err != nil {
			log.Err(err).Str("func", "resolutionJournal.Recent").Msg("failed to scan resolution record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		r.Action = models.ResolutionAction(action)
		r.Outcome = models.ResolutionOutcome(outcome)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
