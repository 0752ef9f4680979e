package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleSource reads the next upcoming event from a Google Calendar. Only
// the event's start and summary leave this package; attendees, location,
// and description stay behind the boundary.
type GoogleSource struct {
	srv        *gcal.Service
	calendarID string
}

// NewGoogleSource builds a source from a client-secrets file and a stored
// OAuth token. Obtaining and refreshing the token is the surrounding
// application's concern; a missing token is an error here, not a prompt.
func NewGoogleSource(ctx context.Context, credentialsPath, tokenPath, calendarName string) (*GoogleSource, error) {
	secrets, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("calendar: read credentials: %w", err)
	}
	config, err := google.ConfigFromJSON(secrets, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("calendar: parse credentials: %w", err)
	}
	token, err := loadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	srv, err := gcal.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("calendar: build service: %w", err)
	}

	calendarID, err := resolveCalendarID(srv, calendarName)
	if err != nil {
		return nil, err
	}
	return &GoogleSource{srv: srv, calendarID: calendarID}, nil
}

func (g *GoogleSource) NextEvent(ctx context.Context, now time.Time) (*Event, error) {
	events, err := g.srv.Events.List(g.calendarID).
		TimeMin(now.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(5).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}

	for _, item := range events.Items {
		start, ok := eventStart(item)
		if !ok || !start.After(now) {
			continue
		}
		return &Event{Start: start, Name: item.Summary}, nil
	}
	return nil, nil
}

// eventStart parses a timed event's start. All-day events carry only a date
// and are skipped: they do not bound a working session.
func eventStart(item *gcal.Event) (time.Time, bool) {
	if item.Start == nil || item.Start.DateTime == "" {
		return time.Time{}, false
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

func resolveCalendarID(srv *gcal.Service, name string) (string, error) {
	if name == "" {
		return "primary", nil
	}
	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return "", fmt.Errorf("calendar: list calendars: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar: calendar %q not found", name)
}

func loadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calendar: read token: %w", err)
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(raw, token); err != nil {
		return nil, fmt.Errorf("calendar: parse token: %w", err)
	}
	return token, nil
}
