package engine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/calsync/internal/calendar"
	"github.com/roach88/calsync/internal/store"
)

// fakeGateway is an in-memory Gateway for engine tests. Events are
// held per calendar id in listing order.
type fakeGateway struct {
	events    map[string][]calendar.Event
	calendars []calendar.Info

	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int

	nextID int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{events: make(map[string][]calendar.Event)}
}

func (g *fakeGateway) add(calendarID string, ev calendar.Event) {
	g.events[calendarID] = append(g.events[calendarID], ev)
}

func (g *fakeGateway) remove(calendarID, eventID string) {
	evs := g.events[calendarID]
	for i, ev := range evs {
		if ev.ID == eventID {
			g.events[calendarID] = append(evs[:i:i], evs[i+1:]...)
			return
		}
	}
}

func (g *fakeGateway) resetCalls() {
	g.listCalls, g.getCalls, g.createCalls, g.updateCalls, g.deleteCalls = 0, 0, 0, 0, 0
}

func (g *fakeGateway) writeCalls() int {
	return g.createCalls + g.updateCalls + g.deleteCalls
}

func (g *fakeGateway) ListEvents(_ context.Context, calendarID string, _, _ time.Time) ([]calendar.Event, error) {
	g.listCalls++
	out := make([]calendar.Event, len(g.events[calendarID]))
	copy(out, g.events[calendarID])
	return out, nil
}

func (g *fakeGateway) GetEvent(_ context.Context, calendarID, eventID string) (*calendar.Event, error) {
	g.getCalls++
	for _, ev := range g.events[calendarID] {
		if ev.ID == eventID {
			found := ev
			return &found, nil
		}
	}
	return nil, nil
}

func (g *fakeGateway) CreateEvent(_ context.Context, calendarID string, draft calendar.EventDraft) (*calendar.Event, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	ev := calendar.Event{
		ID:          fmt.Sprintf("tgt-%d", g.nextID),
		Summary:     draft.Summary,
		Start:       draft.Start,
		End:         draft.End,
		Description: draft.Description,
		Location:    draft.Location,
		Visibility:  draft.Visibility,
	}
	g.add(calendarID, ev)
	return &ev, nil
}

func (g *fakeGateway) UpdateEvent(_ context.Context, calendarID, eventID string, draft calendar.EventDraft) (*calendar.Event, error) {
	g.updateCalls++
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	for i, ev := range g.events[calendarID] {
		if ev.ID == eventID {
			ev.Summary = draft.Summary
			ev.Start = draft.Start
			ev.End = draft.End
			ev.Description = draft.Description
			ev.Location = draft.Location
			ev.Visibility = draft.Visibility
			g.events[calendarID][i] = ev
			return &ev, nil
		}
	}
	return nil, fmt.Errorf("update: event %s not found", eventID)
}

func (g *fakeGateway) DeleteEvent(_ context.Context, calendarID, eventID string) error {
	g.deleteCalls++
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.remove(calendarID, eventID)
	return nil
}

func (g *fakeGateway) ListCalendars(_ context.Context) ([]calendar.Info, error) {
	return g.calendars, nil
}

// testNow pins the engine clock so the sync window always covers the
// fixture events.
var testNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

const (
	srcCal = "src@example.com"
	tgtCal = "tgt@example.com"
)

// standupEvent is the canonical timed fixture: 2026-01-05 09:00-09:30 UTC.
func standupEvent(id string) calendar.Event {
	return calendar.Event{
		ID:      id,
		Summary: "Standup",
		Start:   calendar.EventDateTime{DateTime: "2026-01-05T09:00:00Z"},
		End:     calendar.EventDateTime{DateTime: "2026-01-05T09:30:00Z"},
		Updated: "2026-01-04T08:00:00Z",
	}
}

// newTestEngine wires a fresh store and fake gateway with a pinned
// clock, capturing output in a buffer.
func newTestEngine(t *testing.T, gw *fakeGateway, opts Options) (*Engine, *store.Store, *bytes.Buffer) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if opts.TargetCalendarID == "" {
		opts.TargetCalendarID = tgtCal
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 7
	}
	if opts.DaysAhead == 0 {
		opts.DaysAhead = 90
	}

	var out bytes.Buffer
	e := New(gw, st, opts, WithOutput(&out), WithNow(func() time.Time { return testNow }))
	return e, st, &out
}
