package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/calsync/internal/calendar"
)

// SyncCalendar performs one one-way sync pass from a source calendar
// into the target calendar. name is the configured display name, used
// in log lines and the summary.
//
// Per-event remote failures degrade to the skipped outcome and the
// pass continues; listing and mapping-store failures abort the pass.
func (e *Engine) SyncCalendar(ctx context.Context, name, sourceCalendarID string) (RunStats, error) {
	var stats RunStats

	timeMin, timeMax := e.window()
	log := slog.With("run_id", e.runID, "calendar", name)

	sourceEvents, err := e.gateway.ListEvents(ctx, sourceCalendarID, timeMin, timeMax)
	if err != nil {
		return stats, fmt.Errorf("list source events for %q: %w", name, err)
	}
	log.Debug("listed source events", "count", len(sourceEvents))

	// Snapshot of tracked ids, diffed below for deletion detection.
	tracked, err := e.store.ListSourceIDs(ctx, sourceCalendarID)
	if err != nil {
		return stats, err
	}

	seen := make(map[string]struct{}, len(sourceEvents))
	for _, src := range sourceEvents {
		seen[src.ID] = struct{}{}

		mapping, err := e.store.LookupBySource(ctx, sourceCalendarID, src.ID)
		if err != nil {
			return stats, err
		}

		if mapping == nil {
			if err := e.createEvent(ctx, log, sourceCalendarID, src, &stats); err != nil {
				return stats, err
			}
			continue
		}

		// Events without a parseable update timestamp are treated as
		// unchanged: eligible for creation above, never for update.
		sourceUpdated, ok := src.UpdatedTime()
		if !ok || !sourceUpdated.After(mapping.LastSynced) {
			stats.Skipped++
			continue
		}

		if err := e.updateEvent(ctx, log, sourceCalendarID, src, mapping.TargetEventID, &stats); err != nil {
			return stats, err
		}
	}

	if e.opts.DeleteOnSourceDelete {
		for sourceEventID := range tracked {
			if _, ok := seen[sourceEventID]; ok {
				continue
			}
			if err := e.deleteEvent(ctx, log, sourceCalendarID, sourceEventID, &stats); err != nil {
				return stats, err
			}
		}
	}

	fmt.Fprintln(e.out, stats.Summary(name, sourceCalendarID))
	return stats, nil
}

// createEvent projects and creates the target copy of an untracked
// source event, then records the mapping. Remote failure counts as
// skipped; a store failure aborts the pass.
func (e *Engine) createEvent(ctx context.Context, log *slog.Logger, sourceCalendarID string, src calendar.Event, stats *RunStats) error {
	date := calendar.FormatStart(src.Start)
	title := calendar.Title(src.Summary)

	if e.opts.DryRun {
		stats.Created++
		fmt.Fprintf(e.out, "  [DRY RUN] Would create event Date=%s %q\n", date, title)
		return nil
	}

	draft := calendar.ProjectForTarget(src, e.projectOptions())
	created, err := e.gateway.CreateEvent(ctx, e.opts.TargetCalendarID, draft)
	if err != nil {
		log.Warn("create failed", "event", src.ID, "error", err)
		stats.Skipped++
		return nil
	}

	sourceUpdated, _ := src.UpdatedTime()
	if err := e.store.Upsert(ctx, sourceCalendarID, src.ID, e.opts.TargetCalendarID, created.ID, sourceUpdated); err != nil {
		// The target copy exists but is untracked; the next
		// reconcile pass will pick it up.
		return fmt.Errorf("record mapping for %s: %w", src.ID, err)
	}

	stats.Created++
	fmt.Fprintf(e.out, "Added event Date=%s %q\n", date, title)
	return nil
}

// updateEvent re-projects and pushes a remotely-newer source event,
// refreshing the mapping's last_synced. Remote failure counts as
// skipped; a store failure aborts the pass.
func (e *Engine) updateEvent(ctx context.Context, log *slog.Logger, sourceCalendarID string, src calendar.Event, targetEventID string, stats *RunStats) error {
	date := calendar.FormatStart(src.Start)
	title := calendar.Title(src.Summary)

	if e.opts.DryRun {
		stats.Updated++
		fmt.Fprintf(e.out, "  [DRY RUN] Would update event Date=%s %q\n", date, title)
		return nil
	}

	draft := calendar.ProjectForTarget(src, e.projectOptions())
	if _, err := e.gateway.UpdateEvent(ctx, e.opts.TargetCalendarID, targetEventID, draft); err != nil {
		log.Warn("update failed", "event", src.ID, "target", targetEventID, "error", err)
		stats.Skipped++
		return nil
	}

	sourceUpdated, _ := src.UpdatedTime()
	if err := e.store.Upsert(ctx, sourceCalendarID, src.ID, e.opts.TargetCalendarID, targetEventID, sourceUpdated); err != nil {
		return fmt.Errorf("refresh mapping for %s: %w", src.ID, err)
	}

	stats.Updated++
	fmt.Fprintf(e.out, "Updated event Date=%s %q\n", date, title)
	return nil
}

// deleteEvent propagates a source-side deletion: deletes the mapped
// target event remotely, then removes the mapping. Only store
// failures abort; a failed remote delete counts as skipped and leaves
// the mapping for the next run.
func (e *Engine) deleteEvent(ctx context.Context, log *slog.Logger, sourceCalendarID, sourceEventID string, stats *RunStats) error {
	mapping, err := e.store.LookupBySource(ctx, sourceCalendarID, sourceEventID)
	if err != nil {
		return err
	}
	if mapping == nil {
		return nil
	}

	// Fetch the target copy so the log line can name the event.
	// Best-effort: absence or failure falls back to the raw id.
	detail := fmt.Sprintf("ID=%s", sourceEventID)
	if target, err := e.gateway.GetEvent(ctx, e.opts.TargetCalendarID, mapping.TargetEventID); err == nil && target != nil {
		detail = fmt.Sprintf("Date=%s %q", calendar.FormatStart(target.Start), calendar.Title(target.Summary))
	}

	if e.opts.DryRun {
		stats.Deleted++
		fmt.Fprintf(e.out, "  [DRY RUN] Would delete event %s\n", detail)
		return nil
	}

	if err := e.gateway.DeleteEvent(ctx, e.opts.TargetCalendarID, mapping.TargetEventID); err != nil {
		log.Warn("delete failed", "event", sourceEventID, "target", mapping.TargetEventID, "error", err)
		stats.Skipped++
		return nil
	}

	if _, _, err := e.store.Remove(ctx, sourceCalendarID, sourceEventID); err != nil {
		return err
	}

	stats.Deleted++
	fmt.Fprintf(e.out, "Deleted event %s\n", detail)
	return nil
}
