package calendar

import (
	"context"
	"time"
)

// Event is the only calendar data the recommendation core consumes: the
// next upcoming event's start time and display name.
type Event struct {
	Start time.Time
	Name  string
}

// NextEventSource supplies an optional advisory time hint. A nil event with
// a nil error means the calendar is empty; errors are treated by callers as
// "no suggestion" and never surfaced to the user.
type NextEventSource interface {
	NextEvent(ctx context.Context, now time.Time) (*Event, error)
}

// StaticSource returns a fixed set of events. Used by tests and as an
// offline stand-in when no calendar account is configured.
type StaticSource struct {
	Events []Event
}

func (s *StaticSource) NextEvent(_ context.Context, now time.Time) (*Event, error) {
	var next *Event
	for i := range s.Events {
		ev := s.Events[i]
		if !ev.Start.After(now) {
			continue
		}
		if next == nil || ev.Start.Before(next.Start) {
			next = &ev
		}
	}
	return next, nil
}

// SourceFunc adapts a function to the NextEventSource interface.
type SourceFunc func(ctx context.Context, now time.Time) (*Event, error)

func (f SourceFunc) NextEvent(ctx context.Context, now time.Time) (*Event, error) {
	return f(ctx, now)
}
