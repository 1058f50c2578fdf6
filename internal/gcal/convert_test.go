package gcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	api "google.golang.org/api/calendar/v3"

	"github.com/roach88/calsync/internal/calendar"
)

func TestFromAPIEvent(t *testing.T) {
	ev := fromAPIEvent(&api.Event{
		Id:          "ev-1",
		Summary:     "Standup",
		Start:       &api.EventDateTime{DateTime: "2026-01-05T09:00:00Z"},
		End:         &api.EventDateTime{DateTime: "2026-01-05T09:30:00Z"},
		Description: "notes",
		Updated:     "2026-01-04T08:00:00.000Z",
	})

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "Standup", ev.Summary)
	assert.Equal(t, "2026-01-05T09:00:00Z", ev.Start.DateTime)
	assert.Empty(t, ev.Start.Date)
	assert.Equal(t, "notes", ev.Description)
	assert.Equal(t, "2026-01-04T08:00:00.000Z", ev.Updated)
}

func TestFromAPIEvent_NilTimes(t *testing.T) {
	// Cancelled instances can come back without start/end.
	ev := fromAPIEvent(&api.Event{Id: "ev-1"})
	assert.True(t, ev.Start.IsZero())
	assert.True(t, ev.End.IsZero())
}

func TestToAPIEvent_AllDayKeepsDateForm(t *testing.T) {
	item := toAPIEvent(calendar.EventDraft{
		Summary: "Offsite",
		Start:   calendar.EventDateTime{Date: "2026-04-01"},
		End:     calendar.EventDateTime{Date: "2026-04-02"},
	})

	assert.Equal(t, "2026-04-01", item.Start.Date)
	assert.Empty(t, item.Start.DateTime)
	assert.Equal(t, "2026-04-02", item.End.Date)
}

func TestToAPIEvent_OmitsEmptyOptionalFields(t *testing.T) {
	item := toAPIEvent(calendar.EventDraft{
		Summary: "Standup",
		Start:   calendar.EventDateTime{DateTime: "2026-01-05T09:00:00Z"},
		End:     calendar.EventDateTime{DateTime: "2026-01-05T09:30:00Z"},
	})

	assert.Empty(t, item.Description)
	assert.Empty(t, item.Location)
	assert.Empty(t, item.Visibility)
}
