package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/calsync/internal/calendar"
)

// ReconcileCalendar establishes mappings for target events that were
// created out-of-band, so a cold mapping store does not cause
// duplicates on the next sync. Source and target events are matched
// heuristically by (summary, start, end) key; see calendar.EventKey.
//
// Known limitation: when two target events share a key, the last one
// in listing order wins and the earlier duplicate stays unmatched.
func (e *Engine) ReconcileCalendar(ctx context.Context, name, sourceCalendarID string) (RunStats, error) {
	var stats RunStats

	timeMin, timeMax := e.window()
	log := slog.With("run_id", e.runID, "calendar", name)

	sourceEvents, err := e.gateway.ListEvents(ctx, sourceCalendarID, timeMin, timeMax)
	if err != nil {
		return stats, fmt.Errorf("list source events for %q: %w", name, err)
	}

	targetEvents, err := e.gateway.ListEvents(ctx, e.opts.TargetCalendarID, timeMin, timeMax)
	if err != nil {
		return stats, fmt.Errorf("list target events: %w", err)
	}

	targetByKey := make(map[calendar.EventKey]calendar.Event, len(targetEvents))
	for _, target := range targetEvents {
		key, ok := target.Key()
		if !ok {
			continue
		}
		if prev, exists := targetByKey[key]; exists {
			log.Debug("duplicate target key, keeping later event",
				"summary", key.Summary, "dropped", prev.ID, "kept", target.ID)
		}
		targetByKey[key] = target
	}

	for _, src := range sourceEvents {
		mapping, err := e.store.LookupBySource(ctx, sourceCalendarID, src.ID)
		if err != nil {
			return stats, err
		}
		if mapping != nil {
			stats.AlreadyTracked++
			continue
		}

		// Match on the projected draft's key, not the raw source key:
		// the target copy carries the configured prefix.
		draft := calendar.ProjectForTarget(src, e.projectOptions())
		key, ok := draft.Key()
		if !ok {
			stats.NotFound++
			continue
		}

		target, found := targetByKey[key]
		if !found {
			stats.NotFound++
			continue
		}

		claimed, err := e.store.LookupByTarget(ctx, target.ID)
		if err != nil {
			return stats, err
		}
		if claimed != nil {
			stats.TargetAlreadyMapped++
			continue
		}

		date := calendar.FormatStart(src.Start)
		title := calendar.Title(src.Summary)

		if e.opts.DryRun {
			stats.Reconciled++
			fmt.Fprintf(e.out, "  [DRY RUN] Would reconcile event Date=%s %q\n", date, title)
			continue
		}

		sourceUpdated, _ := src.UpdatedTime()
		if err := e.store.Upsert(ctx, sourceCalendarID, src.ID, e.opts.TargetCalendarID, target.ID, sourceUpdated); err != nil {
			return stats, err
		}

		stats.Reconciled++
		fmt.Fprintf(e.out, "Reconciled event Date=%s %q\n", date, title)
	}

	fmt.Fprintln(e.out, stats.Summary(name, sourceCalendarID))
	return stats, nil
}
