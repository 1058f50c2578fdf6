package calendar

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// EventKey identifies an event for heuristic matching between
// independently-created source and target events. Two events are
// considered the same iff their keys are equal.
//
// Start and End are absolute UTC instants. All-day dates normalize to
// midnight UTC of that date; comparing an all-day date against a timed
// instant is inherently lossy, and midnight UTC is the pinned
// convention for both sides of the comparison. Because Event.Key and
// EventDraft.Key both call DeriveKey, there is a single derivation
// path and the convention cannot drift between them.
type EventKey struct {
	Summary string
	Start   time.Time
	End     time.Time
}

// DeriveKey builds the matching key from an event's summary and
// start/end values. Returns ok=false when any of the three is missing
// or the start/end cannot be parsed.
//
// Summaries are NFC-normalized so canonically-equal titles produced by
// different clients compare equal.
func DeriveKey(summary string, start, end EventDateTime) (EventKey, bool) {
	if summary == "" || start.IsZero() || end.IsZero() {
		return EventKey{}, false
	}

	startAt, ok := parseInstant(start)
	if !ok {
		return EventKey{}, false
	}
	endAt, ok := parseInstant(end)
	if !ok {
		return EventKey{}, false
	}

	return EventKey{
		Summary: norm.NFC.String(summary),
		Start:   startAt,
		End:     endAt,
	}, true
}

// parseInstant normalizes an EventDateTime to an absolute UTC instant.
// All-day dates become midnight UTC (see EventKey).
func parseInstant(dt EventDateTime) (time.Time, bool) {
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	if dt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", dt.Date, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// FormatStart renders an event start for per-event log lines:
// "2006-01-02 15:04 (-07:00)" for timed events, the bare date for
// all-day events, "Unknown date" when absent or unparseable.
func FormatStart(dt EventDateTime) string {
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return "Unknown date"
		}
		return t.Format("2006-01-02 15:04 (-07:00)")
	}
	if dt.Date != "" {
		if _, err := time.ParseInLocation("2006-01-02", dt.Date, time.UTC); err != nil {
			return "Unknown date"
		}
		return dt.Date
	}
	return "Unknown date"
}
