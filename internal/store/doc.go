// Package store provides SQLite-backed durable storage for the
// source-to-target event mapping.
//
// The store holds a single relation, synced_events, keyed by
// (source_calendar_id, source_event_id) with a secondary unique index
// on target_event_id:
//   - LookupBySource / LookupByTarget: point lookups on either key
//   - Upsert: insert-or-replace, stamping last_synced
//   - Remove: delete-and-return-target for deletion propagation
//   - ListSourceIDs: tracked ids per calendar, for deletion detection
//
// # Invariants
//
//   - At most one mapping per (source_calendar_id, source_event_id),
//     enforced by the table's UNIQUE constraint.
//   - At most one mapping per target_event_id, enforced by a UNIQUE
//     index; Upsert surfaces violations as ErrTargetClaimed.
//   - Every mutating call commits before returning. A crash after a
//     call returns cannot lose that call's change.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The store assumes a single engine process per database file; no
// locking discipline exists beyond SQLite's own.
package store
