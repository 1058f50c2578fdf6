// Package calendar defines the typed event model shared by the sync
// engine and the gateway, plus the pure matching functions derived
// from it (event keys and target projection).
package calendar

import "time"

// EventDateTime is the start or end of an event: either an all-day
// date ("2006-01-02") or an RFC3339 timestamp with offset. Exactly one
// of the two fields is set for a well-formed value.
type EventDateTime struct {
	// Date is set for all-day events.
	Date string
	// DateTime is set for timed events.
	DateTime string
}

// IsZero reports whether neither form is present.
func (dt EventDateTime) IsZero() bool {
	return dt.Date == "" && dt.DateTime == ""
}

// Event is a read-only event as returned by the gateway.
// Optional fields use the empty string for "absent".
type Event struct {
	ID          string
	Summary     string
	Start       EventDateTime
	End         EventDateTime
	Description string
	Location    string
	Visibility  string
	// Updated is the remote modification timestamp in RFC3339,
	// empty when the backend did not report one.
	Updated string
}

// UpdatedTime parses the remote modification timestamp.
// Returns ok=false when the timestamp is missing or unparseable;
// such events are treated as never-modified by the engine.
func (e Event) UpdatedTime() (time.Time, bool) {
	if e.Updated == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, e.Updated)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Key derives the matching key for this event.
func (e Event) Key() (EventKey, bool) {
	return DeriveKey(e.Summary, e.Start, e.End)
}

// EventDraft is the payload for creating or updating a target event.
type EventDraft struct {
	Summary     string
	Start       EventDateTime
	End         EventDateTime
	Description string
	Location    string
	Visibility  string
}

// Key derives the matching key for this draft. Drafts and remote
// events share one derivation so a created event matches the draft it
// came from.
func (d EventDraft) Key() (EventKey, bool) {
	return DeriveKey(d.Summary, d.Start, d.End)
}

// Info describes a calendar visible to the authenticated account.
type Info struct {
	ID         string
	Summary    string
	AccessRole string
	Primary    bool
}
