package calendar

// UntitledSummary is the fallback title for source events without a
// summary.
const UntitledSummary = "Untitled Event"

// ProjectOptions control how a source event is projected into a
// target draft.
type ProjectOptions struct {
	// EventPrefix is prepended to every projected summary.
	EventPrefix string
	// SyncDescription copies the source description when present.
	SyncDescription bool
}

// ProjectForTarget builds the draft to create or update in the target
// calendar from a source event.
//
// Start and end are copied verbatim, preserving the all-day vs timed
// form. The summary gets the configured prefix, falling back to
// UntitledSummary when the source has none. Description is copied only
// when enabled and present; location and visibility whenever present.
func ProjectForTarget(src Event, opts ProjectOptions) EventDraft {
	summary := src.Summary
	if summary == "" {
		summary = UntitledSummary
	}

	draft := EventDraft{
		Summary: opts.EventPrefix + summary,
		Start:   src.Start,
		End:     src.End,
	}

	if opts.SyncDescription && src.Description != "" {
		draft.Description = src.Description
	}
	if src.Location != "" {
		draft.Location = src.Location
	}
	if src.Visibility != "" {
		draft.Visibility = src.Visibility
	}

	return draft
}

// Title returns the display title of an event for log lines.
func Title(summary string) string {
	if summary == "" {
		return UntitledSummary
	}
	return summary
}
