package session

import (
	"context"
	"time"

	"github.com/sandeepkv93/nextup/internal/calendar"
	"github.com/sandeepkv93/nextup/internal/model"
	"github.com/sandeepkv93/nextup/internal/recommend"
)

// DefaultAdvisoryTimeout bounds the calendar lookup during Ask. The fetch
// is advisory: slowness or failure degrades to a system-default window and
// never blocks the negotiation.
const DefaultAdvisoryTimeout = 2 * time.Second

type Config struct {
	Events          calendar.NextEventSource
	Tracer          recommend.Tracer
	AdvisoryTimeout time.Duration
	Clock           func() time.Time
}

// Session orchestrates one recommendation interaction: negotiate a window,
// rank the task snapshot, and track the single active recommendation through
// accept / suggest-another / dismiss. It never mutates tasks or goals.
type Session struct {
	negotiator *Negotiator
	ranker     *recommend.Ranker
	events     calendar.NextEventSource
	timeout    time.Duration
	clock      func() time.Time

	tasks  []model.Task
	goals  []model.Goal
	energy model.EnergyLevel

	window   *model.TimeWindow
	current  *model.Recommendation
	excluded map[string]bool
}

func New(cfg Config) *Session {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	timeout := cfg.AdvisoryTimeout
	if timeout <= 0 {
		timeout = DefaultAdvisoryTimeout
	}
	return &Session{
		negotiator: NewNegotiator(clock),
		ranker:     recommend.NewRanker(cfg.Tracer),
		events:     cfg.Events,
		timeout:    timeout,
		clock:      clock,
		energy:     model.EnergyMedium,
	}
}

// SetSnapshot replaces the read-only task and goal snapshots the next
// ranking call will see.
func (s *Session) SetSnapshot(tasks []model.Task, goals []model.Goal) {
	s.tasks = tasks
	s.goals = goals
}

func (s *Session) Energy() model.EnergyLevel { return s.energy }

func (s *Session) State() State { return s.negotiator.State() }

func (s *Session) Negotiator() *Negotiator { return s.negotiator }

func (s *Session) Window() *model.TimeWindow { return s.window }

func (s *Session) Current() *model.Recommendation { return s.current }

// Ask starts a session: it fetches the optional advisory event under a
// timeout and enters AwaitingConfirmation. Every failure mode of the fetch
// collapses to "no suggestion".
func (s *Session) Ask(ctx context.Context) *calendar.Event {
	suggestion := s.fetchSuggestion(ctx)
	s.current = nil
	s.excluded = nil
	s.window = nil
	s.negotiator.Begin(suggestion)
	return suggestion
}

func (s *Session) fetchSuggestion(ctx context.Context) *calendar.Event {
	if s.events == nil {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		event *calendar.Event
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		ev, err := s.events.NextEvent(fetchCtx, s.clock())
		ch <- result{event: ev, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil
		}
		return res.event
	case <-fetchCtx.Done():
		return nil
	}
}

// Confirm validates the negotiated window and produces the first
// recommendation. A nil recommendation means no task is eligible; the
// session ends and the caller shows an empty state, not an error.
func (s *Session) Confirm() (*model.Recommendation, error) {
	window, err := s.negotiator.Confirm()
	if err != nil {
		return nil, err
	}
	s.window = &window
	s.excluded = make(map[string]bool)

	rec := s.rank()
	if rec == nil {
		s.end()
		return nil, nil
	}
	s.current = rec
	return rec, nil
}

// Accept ends the session. Accepting is advisory to the user; no task state
// changes.
func (s *Session) Accept() {
	s.end()
}

// SuggestAnother excludes the shown task and re-ranks against the same
// window. When nothing else is eligible the session ends and nil is
// returned.
func (s *Session) SuggestAnother() *model.Recommendation {
	if s.current == nil || s.window == nil {
		return nil
	}
	s.excluded[s.current.Task.ID] = true

	rec := s.rank()
	if rec == nil {
		s.end()
		return nil
	}
	s.current = rec
	return rec
}

// Dismiss abandons the session from any point.
func (s *Session) Dismiss() {
	s.end()
}

// SetEnergy updates the declared energy level. When a recommendation is on
// screen it recomputes immediately with the same window and no carried
// exclusions; this is the only automatic re-rank in the system.
func (s *Session) SetEnergy(level model.EnergyLevel) *model.Recommendation {
	if !level.IsValid() {
		return s.current
	}
	s.energy = level
	if s.current == nil || s.window == nil {
		return s.current
	}

	s.excluded = make(map[string]bool)
	rec := s.rank()
	if rec == nil {
		s.end()
		return nil
	}
	s.current = rec
	return rec
}

func (s *Session) rank() *model.Recommendation {
	return s.ranker.Rank(recommend.Request{
		Tasks:            s.tasks,
		Goals:            s.goals,
		Energy:           s.energy,
		AvailableMinutes: s.window.Minutes(),
		WindowEnd:        s.window.End,
		WindowSource:     s.window.Source,
		ExcludeIDs:       s.excluded,
		Now:              s.clock(),
	})
}

// end discards the window and recommendation and returns to Idle. Nothing
// survives into the next session.
func (s *Session) end() {
	s.window = nil
	s.current = nil
	s.excluded = nil
	s.negotiator.Discard()
}
