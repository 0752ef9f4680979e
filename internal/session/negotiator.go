package session

import (
	"errors"
	"time"

	"github.com/sandeepkv93/nextup/internal/calendar"
	"github.com/sandeepkv93/nextup/internal/model"
)

var (
	ErrWindowTooShort = errors.New("session: window must be at least 10 minutes")
	ErrNotNegotiating = errors.New("session: no negotiation in progress")
)

type State string

const (
	StateIdle                 State = "idle"
	StateAwaitingConfirmation State = "awaiting-confirmation"
	StateConfirmed            State = "confirmed"
)

const (
	// DefaultWindowMinutes is proposed when no calendar suggestion applies.
	DefaultWindowMinutes = 45
	// MinWindowMinutes is the shortest confirmable window.
	MinWindowMinutes = 10
)

// Negotiator establishes one session's time window. A calendar suggestion
// only ever preloads the proposal; the moment the user edits the end time or
// picks a preset, provenance flips to user and stays there. Confirmation
// revalidates against a fresh clock reading so a proposal that sat on screen
// cannot confirm into a window shorter than the minimum.
type Negotiator struct {
	state      State
	endTime    time.Time
	source     model.WindowSource
	suggestion *calendar.Event
	clock      func() time.Time
}

func NewNegotiator(clock func() time.Time) *Negotiator {
	if clock == nil {
		clock = time.Now
	}
	return &Negotiator{state: StateIdle, clock: clock}
}

func (n *Negotiator) State() State { return n.state }

// Begin enters AwaitingConfirmation with a default proposal. A future-dated
// suggestion preloads its start time as the proposed end; anything else
// falls back to now plus the default window. Beginning again replaces any
// in-flight negotiation so no previous state leaks across sessions.
func (n *Negotiator) Begin(suggestion *calendar.Event) {
	now := n.clock()
	n.state = StateAwaitingConfirmation
	if suggestion != nil && suggestion.Start.After(now) {
		n.suggestion = suggestion
		n.endTime = suggestion.Start
		n.source = model.SourceCalendarSuggested
		return
	}
	n.suggestion = nil
	n.endTime = now.Add(DefaultWindowMinutes * time.Minute)
	n.source = model.SourceSystemDefault
}

// Proposed reports the current proposal for display.
func (n *Negotiator) Proposed() (end time.Time, source model.WindowSource) {
	return n.endTime, n.source
}

// SetEndTime records a user-entered end time. User input always wins: the
// source becomes user no matter what preloaded the proposal.
func (n *Negotiator) SetEndTime(end time.Time) error {
	if n.state != StateAwaitingConfirmation {
		return ErrNotNegotiating
	}
	n.endTime = end
	n.source = model.SourceUser
	return nil
}

// PickPreset sets the end time to now plus the preset minutes (+20/+40/+60
// in the UI). Presets count as user input.
func (n *Negotiator) PickPreset(minutes int) error {
	if n.state != StateAwaitingConfirmation {
		return ErrNotNegotiating
	}
	n.endTime = n.clock().Add(time.Duration(minutes) * time.Minute)
	n.source = model.SourceUser
	return nil
}

// Confirm validates the proposal and emits the session window. On a
// too-short window the negotiation stays in AwaitingConfirmation and the
// caller surfaces the error as a soft message.
func (n *Negotiator) Confirm() (model.TimeWindow, error) {
	if n.state != StateAwaitingConfirmation {
		return model.TimeWindow{}, ErrNotNegotiating
	}
	now := n.clock()
	if n.endTime.Sub(now) < MinWindowMinutes*time.Minute {
		return model.TimeWindow{}, ErrWindowTooShort
	}

	window := model.TimeWindow{
		Start:  now,
		End:    n.endTime,
		Source: n.source,
	}
	if n.source == model.SourceCalendarSuggested && n.suggestion != nil {
		window.EventName = n.suggestion.Name
	}
	n.state = StateConfirmed
	return window, nil
}

// Discard returns to Idle from any state, dropping all proposal state.
func (n *Negotiator) Discard() {
	n.state = StateIdle
	n.endTime = time.Time{}
	n.source = ""
	n.suggestion = nil
}
