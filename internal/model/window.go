package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidWindowSource = errors.New("model: invalid window source")

// WindowSource records who decided the window's end time. User input always
// wins over a calendar suggestion; the explanation layer phrases itself
// differently depending on provenance, so this must stay truthful.
type WindowSource string

const (
	SourceUser              WindowSource = "user"
	SourceCalendarSuggested WindowSource = "calendar-suggested"
	SourceSystemDefault     WindowSource = "system-default"
)

func (s WindowSource) IsValid() bool {
	switch s {
	case SourceUser, SourceCalendarSuggested, SourceSystemDefault:
		return true
	default:
		return false
	}
}

// TimeWindow is the negotiated block of uninterrupted time for one
// recommendation session. It is never persisted; Start is always the moment
// of confirmation.
type TimeWindow struct {
	Start     time.Time
	End       time.Time
	Source    WindowSource
	EventName string
}

func (w TimeWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return errors.New("model: window start and end are required")
	}
	if !w.End.After(w.Start) {
		return errors.New("model: window end must be after start")
	}
	if !w.Source.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWindowSource, w.Source)
	}
	return nil
}

// Minutes is the window length rounded to whole minutes.
func (w TimeWindow) Minutes() int {
	return int(math.Round(w.End.Sub(w.Start).Minutes()))
}

type ReasonType string

const (
	ReasonCorePressure      ReasonType = "core-pressure"
	ReasonGrowthOpportunity ReasonType = "growth-opportunity"
)

// Recommendation is the single selected task with its rationale. It is
// immutable once produced; a re-rank produces a fresh value.
type Recommendation struct {
	Task        Task
	Reason      ReasonType
	Explanation string
	Minutes     int
}
