// Package engine implements the one-way calendar sync passes.
//
// The engine is the heart of calsync - it pulls source events for a
// time window, consults the mapping store, and decides per event
// whether to create, update, skip, or delete the corresponding target
// event.
//
// ARCHITECTURE:
//
// Single-Threaded Batch Passes:
// Each pass (SyncCalendar, ReconcileCalendar) processes source events
// sequentially in listing order (start-time ascending). This ensures:
// - Predictable per-event decisions
// - One event's failure never blocks the rest of the pass
// - Simple reasoning about the mapping store, the only shared state
//
// Sync Pass Flow:
// 1. Compute [now - days_back, now + days_ahead] window in UTC
// 2. List source events (recurring series pre-expanded by the gateway)
// 3. Snapshot tracked source ids for deletion detection
// 4. Per event: untracked -> create; tracked and remotely newer than
//    last_synced -> update; otherwise skip
// 5. If enabled, delete target events whose source disappeared
// 6. Render a per-calendar summary of non-zero outcome counts
//
// Reconciliation matches pre-existing target events to untracked
// source events by (summary, start, end) key so a cold mapping store
// does not cause duplicates.
//
// All passes are idempotent with respect to the stored mapping: an
// interrupted run leaves committed partial progress, and re-running
// converges. Dry-run counts every decision without remote writes or
// store mutations.
package engine
