package gcal

import (
	api "google.golang.org/api/calendar/v3"

	"github.com/roach88/calsync/internal/calendar"
)

// fromAPIEvent maps a wire event into the engine's typed model.
func fromAPIEvent(item *api.Event) calendar.Event {
	return calendar.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Start:       fromAPIDateTime(item.Start),
		End:         fromAPIDateTime(item.End),
		Description: item.Description,
		Location:    item.Location,
		Visibility:  item.Visibility,
		Updated:     item.Updated,
	}
}

// toAPIEvent maps a target draft onto the wire shape. Start and end
// keep their all-day vs timed form.
func toAPIEvent(draft calendar.EventDraft) *api.Event {
	return &api.Event{
		Summary:     draft.Summary,
		Start:       toAPIDateTime(draft.Start),
		End:         toAPIDateTime(draft.End),
		Description: draft.Description,
		Location:    draft.Location,
		Visibility:  draft.Visibility,
	}
}

func fromAPIDateTime(dt *api.EventDateTime) calendar.EventDateTime {
	if dt == nil {
		return calendar.EventDateTime{}
	}
	return calendar.EventDateTime{
		Date:     dt.Date,
		DateTime: dt.DateTime,
	}
}

func toAPIDateTime(dt calendar.EventDateTime) *api.EventDateTime {
	if dt.IsZero() {
		return nil
	}
	return &api.EventDateTime{
		Date:     dt.Date,
		DateTime: dt.DateTime,
	}
}
