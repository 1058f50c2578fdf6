package engine

import (
	"fmt"
	"strings"
)

// RunStats counts per-event outcomes for one pass over one source
// calendar. Transient; never persisted.
type RunStats struct {
	// Sync outcomes.
	Created int
	Updated int
	Skipped int
	Deleted int

	// Reconciliation outcomes.
	Reconciled          int
	AlreadyTracked      int
	NotFound            int
	TargetAlreadyMapped int
}

// statLine pairs a display name with its count, in summary order.
type statLine struct {
	name  string
	count int
}

func (s RunStats) lines() []statLine {
	return []statLine{
		{"Created", s.Created},
		{"Updated", s.Updated},
		{"Skipped", s.Skipped},
		{"Deleted", s.Deleted},
		{"Reconciled", s.Reconciled},
		{"AlreadyTracked", s.AlreadyTracked},
		{"NotFoundInTarget", s.NotFound},
		{"TargetAlreadyMapped", s.TargetAlreadyMapped},
	}
}

// Summary renders the per-calendar summary line: non-zero counts in a
// fixed order, or "<No entries>" when every count is zero, tagged with
// the calendar's display name and id.
func (s RunStats) Summary(name, calendarID string) string {
	var parts []string
	for _, l := range s.lines() {
		if l.count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", l.name, l.count))
		}
	}

	counts := "<No entries>"
	if len(parts) > 0 {
		counts = strings.Join(parts, " ")
	}

	return fmt.Sprintf("%s Calendar=%q ID=%s", counts, name, calendarID)
}
