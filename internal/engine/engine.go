package engine

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/calsync/internal/calendar"
	"github.com/roach88/calsync/internal/store"
)

// Gateway is the calendar transport consumed by the engine. The
// production implementation lives in internal/gcal; tests use an
// in-memory fake.
//
// ListEvents returns single-instance expansions of recurring series,
// ordered by start time ascending. GetEvent returns (nil, nil) when
// the event does not exist; absence is not an error.
type Gateway interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error)
	CreateEvent(ctx context.Context, calendarID string, draft calendar.EventDraft) (*calendar.Event, error)
	UpdateEvent(ctx context.Context, calendarID, eventID string, draft calendar.EventDraft) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	ListCalendars(ctx context.Context) ([]calendar.Info, error)
}

// Options configure a sync run. Zero values are valid: no prefix, no
// description copying, no deletion propagation, empty window.
type Options struct {
	// TargetCalendarID is the writable calendar receiving copies.
	TargetCalendarID string

	// EventPrefix is prepended to projected event titles.
	EventPrefix string

	// SyncDescription copies source descriptions into target drafts.
	SyncDescription bool

	// DeleteOnSourceDelete propagates source-side deletions to the
	// target calendar.
	DeleteOnSourceDelete bool

	// DaysBack and DaysAhead bound the sync window around now.
	DaysBack  int
	DaysAhead int

	// DryRun counts and reports intended actions without performing
	// remote writes or store mutations.
	DryRun bool
}

// Engine orchestrates one-way sync and reconciliation between source
// calendars and the target calendar.
//
// Engine is not safe for concurrent use; run one pass at a time. The
// mapping store assumes a single engine process per database file.
type Engine struct {
	gateway Gateway
	store   *store.Store
	opts    Options

	// out receives per-event action lines and run summaries.
	out io.Writer

	// now is injected for deterministic windows in tests.
	now func() time.Time

	// runID correlates log lines across one process invocation.
	runID string
}

// Option overrides an Engine default.
type Option func(*Engine)

// WithOutput redirects human-readable action lines and summaries.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithNow fixes the engine's clock. Used by tests to pin the sync
// window.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over a gateway and mapping store.
func New(gw Gateway, st *store.Store, opts Options, optFns ...Option) *Engine {
	e := &Engine{
		gateway: gw,
		store:   st,
		opts:    opts,
		out:     os.Stdout,
		now:     time.Now,
		runID:   uuid.NewString(),
	}
	for _, fn := range optFns {
		fn(e)
	}
	return e
}

// window returns the UTC time range [now - days_back, now + days_ahead].
func (e *Engine) window() (time.Time, time.Time) {
	now := e.now().UTC()
	return now.AddDate(0, 0, -e.opts.DaysBack), now.AddDate(0, 0, e.opts.DaysAhead)
}

// projectOptions builds the projection options from the engine config.
func (e *Engine) projectOptions() calendar.ProjectOptions {
	return calendar.ProjectOptions{
		EventPrefix:     e.opts.EventPrefix,
		SyncDescription: e.opts.SyncDescription,
	}
}
