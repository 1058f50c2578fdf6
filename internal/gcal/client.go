package gcal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	api "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/roach88/calsync/internal/calendar"
)

// Service construction retry policy: transient network failures during
// initial connection are retried with capped exponential backoff;
// per-event calls later are not retried (the engine degrades those to
// skipped).
const (
	connectAttempts = 5
	connectBaseWait = 4 * time.Second
	connectMaxWait  = 60 * time.Second
)

// Client implements the engine's Gateway over the Google Calendar API.
type Client struct {
	svc *api.Service
}

// NewClient builds an authenticated Calendar service from the
// credential provider, retrying transient connection failures.
func NewClient(ctx context.Context, creds *Credentials) (*Client, error) {
	ts, err := creds.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	var svc *api.Service
	wait := connectBaseWait
	for attempt := 1; ; attempt++ {
		svc, err = api.NewService(ctx, option.WithTokenSource(ts))
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			return nil, fmt.Errorf("connect to calendar service after %d attempts: %w", connectAttempts, err)
		}

		slog.Warn("calendar service connection failed, retrying",
			"attempt", attempt, "max_attempts", connectAttempts, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
		if wait > connectMaxWait {
			wait = connectMaxWait
		}
	}

	return &Client{svc: svc}, nil
}

// ListEvents returns events within [timeMin, timeMax) ordered by start
// time, with recurring series expanded to single instances. All pages
// are fetched.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	var out []calendar.Event

	pageToken := ""
	for {
		call := c.svc.Events.List(calendarID).
			TimeMin(timeMin.UTC().Format(time.RFC3339)).
			TimeMax(timeMax.UTC().Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list events in %s: %w", calendarID, err)
		}

		for _, item := range res.Items {
			out = append(out, fromAPIEvent(item))
		}

		if res.NextPageToken == "" {
			return out, nil
		}
		pageToken = res.NextPageToken
	}
}

// GetEvent fetches a single event by id. A 404 is absence, not an
// error.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	item, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	ev := fromAPIEvent(item)
	return &ev, nil
}

// CreateEvent inserts a new event built from the draft.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, draft calendar.EventDraft) (*calendar.Event, error) {
	item, err := c.svc.Events.Insert(calendarID, toAPIEvent(draft)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	ev := fromAPIEvent(item)
	return &ev, nil
}

// UpdateEvent replaces an existing event's content with the draft.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, draft calendar.EventDraft) (*calendar.Event, error) {
	item, err := c.svc.Events.Update(calendarID, eventID, toAPIEvent(draft)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", eventID, err)
	}
	ev := fromAPIEvent(item)
	return &ev, nil
}

// DeleteEvent removes an event from a calendar.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

// ListCalendars returns every calendar visible to the authenticated
// account.
func (c *Client) ListCalendars(ctx context.Context) ([]calendar.Info, error) {
	var out []calendar.Info

	pageToken := ""
	for {
		call := c.svc.CalendarList.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list calendars: %w", err)
		}

		for _, item := range res.Items {
			out = append(out, calendar.Info{
				ID:         item.Id,
				Summary:    item.Summary,
				AccessRole: item.AccessRole,
				Primary:    item.Primary,
			})
		}

		if res.NextPageToken == "" {
			return out, nil
		}
		pageToken = res.NextPageToken
	}
}

// isNotFound reports whether an API error is a 404.
func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}
