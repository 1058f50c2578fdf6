package engine

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestRunStats_Summary(t *testing.T) {
	tests := []struct {
		name  string
		stats RunStats
		want  string
	}{
		{
			name:  "single outcome",
			stats: RunStats{Created: 1},
			want:  `Created=1 Calendar="Work" ID=work@example.com`,
		},
		{
			name:  "zero counts omitted",
			stats: RunStats{Created: 2, Skipped: 5},
			want:  `Created=2 Skipped=5 Calendar="Work" ID=work@example.com`,
		},
		{
			name:  "all zero",
			stats: RunStats{},
			want:  `<No entries> Calendar="Work" ID=work@example.com`,
		},
		{
			name:  "fixed ordering",
			stats: RunStats{Deleted: 1, Created: 1, Updated: 1, Skipped: 1},
			want:  `Created=1 Updated=1 Skipped=1 Deleted=1 Calendar="Work" ID=work@example.com`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.Summary("Work", "work@example.com"))
		})
	}
}

// TestRunStats_SummaryGolden pins the exact summary rendering; the
// format is part of the tool's observable output contract.
//
// To regenerate: go test ./internal/engine -update
func TestRunStats_SummaryGolden(t *testing.T) {
	var buf bytes.Buffer

	renders := []struct {
		stats RunStats
		name  string
		id    string
	}{
		{RunStats{Created: 3, Updated: 1, Skipped: 12}, "Team Calendar", "team@example.com"},
		{RunStats{Deleted: 2}, "Holidays", "holidays@group.v.calendar.google.com"},
		{RunStats{}, "Empty", "empty@example.com"},
		{RunStats{Reconciled: 4, AlreadyTracked: 2, NotFound: 1, TargetAlreadyMapped: 1}, "Work", "work@example.com"},
	}
	for _, r := range renders {
		fmt.Fprintln(&buf, r.stats.Summary(r.name, r.id))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "run_summaries", buf.Bytes())
}
