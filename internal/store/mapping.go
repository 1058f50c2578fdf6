package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ErrTargetClaimed is returned by Upsert when a different source event
// already maps to the requested target event. The UNIQUE index on
// target_event_id enforces this; callers that want a soft check use
// LookupByTarget first.
var ErrTargetClaimed = errors.New("target event already claimed by another mapping")

// Mapping is one row of the synced_events relation: the durable
// association between a source event and the copy created for it in
// the target calendar.
type Mapping struct {
	SourceCalendarID string
	SourceEventID    string
	TargetCalendarID string
	TargetEventID    string

	// SourceUpdated is the source event's remote modification time at
	// the last successful propagate; zero when the source reported none.
	SourceUpdated time.Time

	// LastSynced is set by Upsert on every successful propagate.
	LastSynced time.Time
}

// timeLayout is the stored timestamp format. RFC3339Nano keeps full
// precision and sorts lexicographically for UTC values.
const timeLayout = time.RFC3339Nano

// LookupBySource returns the mapping for a source event, or nil when
// the event is untracked.
func (s *Store) LookupBySource(ctx context.Context, sourceCal, sourceEventID string) (*Mapping, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source_calendar_id, source_event_id, target_calendar_id, target_event_id,
		       source_updated, last_synced
		FROM synced_events
		WHERE source_calendar_id = ? AND source_event_id = ?
	`, sourceCal, sourceEventID)

	m, err := scanMapping(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup by source: %w", err)
	}
	return m, nil
}

// LookupByTarget returns the mapping claiming a target event, or nil
// when no mapping references it. Used by reconciliation to avoid
// claiming one target event for two source events.
func (s *Store) LookupByTarget(ctx context.Context, targetEventID string) (*Mapping, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source_calendar_id, source_event_id, target_calendar_id, target_event_id,
		       source_updated, last_synced
		FROM synced_events
		WHERE target_event_id = ?
	`, targetEventID)

	m, err := scanMapping(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup by target: %w", err)
	}
	return m, nil
}

// Upsert inserts or replaces the mapping keyed by (source calendar,
// source event), setting last_synced to the current time. A zero
// SourceUpdated stores NULL.
//
// Returns ErrTargetClaimed when the target event id is already
// referenced by a different source event.
func (s *Store) Upsert(ctx context.Context, sourceCal, sourceEventID, targetCal, targetEventID string, sourceUpdated time.Time) error {
	var sourceUpdatedStr sql.NullString
	if !sourceUpdated.IsZero() {
		sourceUpdatedStr = sql.NullString{String: sourceUpdated.UTC().Format(timeLayout), Valid: true}
	}
	now := time.Now().UTC().Format(timeLayout)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO synced_events
		(source_calendar_id, source_event_id, target_calendar_id, target_event_id, source_updated, last_synced)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_calendar_id, source_event_id) DO UPDATE SET
			target_calendar_id = excluded.target_calendar_id,
			target_event_id = excluded.target_event_id,
			source_updated = excluded.source_updated,
			last_synced = excluded.last_synced
	`, sourceCal, sourceEventID, targetCal, targetEventID, sourceUpdatedStr, now)
	if err != nil {
		// The source-key conflict is resolved by the upsert, so a
		// UNIQUE violation here can only be the target index.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("upsert mapping for %s/%s: %w", sourceCal, sourceEventID, ErrTargetClaimed)
		}
		return fmt.Errorf("upsert mapping: %w", err)
	}

	return nil
}

// Remove atomically deletes the mapping for a source event and returns
// the target event id it referenced, so the caller can propagate a
// remote deletion. found is false when no mapping existed.
func (s *Store) Remove(ctx context.Context, sourceCal, sourceEventID string) (targetEventID string, found bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("remove mapping: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	err = tx.QueryRowContext(ctx, `
		SELECT target_event_id FROM synced_events
		WHERE source_calendar_id = ? AND source_event_id = ?
	`, sourceCal, sourceEventID).Scan(&targetEventID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("remove mapping: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM synced_events
		WHERE source_calendar_id = ? AND source_event_id = ?
	`, sourceCal, sourceEventID); err != nil {
		return "", false, fmt.Errorf("remove mapping: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("remove mapping: commit: %w", err)
	}

	return targetEventID, true, nil
}

// ListSourceIDs returns the set of source event ids tracked for a
// source calendar. The engine diffs this against the current listing
// to detect source-side deletions.
func (s *Store) ListSourceIDs(ctx context.Context, sourceCal string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_event_id FROM synced_events
		WHERE source_calendar_id = ?
	`, sourceCal)
	if err != nil {
		return nil, fmt.Errorf("list source ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list source ids: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list source ids: %w", err)
	}

	return ids, nil
}

// scanMapping reads one mapping row from a QueryRow result.
func scanMapping(row *sql.Row) (*Mapping, error) {
	var m Mapping
	var sourceUpdated sql.NullString
	var lastSynced string

	if err := row.Scan(
		&m.SourceCalendarID,
		&m.SourceEventID,
		&m.TargetCalendarID,
		&m.TargetEventID,
		&sourceUpdated,
		&lastSynced,
	); err != nil {
		return nil, err
	}

	if sourceUpdated.Valid {
		t, err := time.Parse(timeLayout, sourceUpdated.String)
		if err != nil {
			return nil, fmt.Errorf("parse source_updated: %w", err)
		}
		m.SourceUpdated = t
	}

	t, err := time.Parse(timeLayout, lastSynced)
	if err != nil {
		return nil, fmt.Errorf("parse last_synced: %w", err)
	}
	m.LastSynced = t

	return &m, nil
}
