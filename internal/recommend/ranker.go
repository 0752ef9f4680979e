package recommend

import (
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/nextup/internal/model"
)

// Weights combine the three factor scores into a composite. They must sum
// to 1.0 so the composite stays on the same 0-100 scale as its terms.
type Weights struct {
	Pressure    float64
	EnergyFit   float64
	DurationFit float64
}

func DefaultWeights() Weights {
	return Weights{
		Pressure:    0.5,
		EnergyFit:   0.3,
		DurationFit: 0.2,
	}
}

// corePressureThreshold labels a winning core obligation as core-pressure.
// It is independent of the composite ranking on purpose: a core task can win
// on energy and duration fit while its pressure sits at baseline, and that
// selection reads as an opportunity, not an obligation.
const corePressureThreshold = 50.0

// ScoredCandidate is the per-task scoring breakdown, produced transiently
// during ranking and handed to the tracer.
type ScoredCandidate struct {
	Task         model.Task
	Pressure     float64
	EnergyFit    float64
	DurationFit  float64
	Score        float64
	DaysUntilDue float64
	HasDeadline  bool
}

// Tracer receives one record per scored candidate. It replaces ambient
// debug globals; a nil tracer disables tracing entirely.
type Tracer interface {
	Trace(c ScoredCandidate)
}

// Request is one ranking call's full input snapshot. Rank never mutates it.
type Request struct {
	Tasks            []model.Task
	Goals            []model.Goal
	Energy           model.EnergyLevel
	AvailableMinutes int
	WindowEnd        time.Time
	WindowSource     model.WindowSource
	ExcludeIDs       map[string]bool
	Now              time.Time
}

type Ranker struct {
	Weights Weights
	Tracer  Tracer
}

func NewRanker(tracer Tracer) *Ranker {
	return &Ranker{Weights: DefaultWeights(), Tracer: tracer}
}

// Rank filters, scores, and deterministically selects the single best task,
// or returns nil when no task is eligible. Equal scores resolve to the
// earliest task in input order; the sort is stable to keep that testable.
func (r *Ranker) Rank(req Request) *model.Recommendation {
	candidates := make([]ScoredCandidate, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		if !eligible(task, req.ExcludeIDs) {
			continue
		}
		c := r.score(task, req)
		if r.Tracer != nil {
			r.Tracer.Trace(c)
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	best := candidates[0]

	reason := model.ReasonGrowthOpportunity
	if best.Task.Type == model.TaskTypeCoreObligation && best.Pressure > corePressureThreshold {
		reason = model.ReasonCorePressure
	}

	minutes := best.Task.EstimatedMinutes
	if minutes > req.AvailableMinutes {
		minutes = req.AvailableMinutes
	}

	var goal *model.Goal
	if g, ok := model.GoalByID(req.Goals, best.Task.GoalID); ok {
		goal = &g
	}

	return &model.Recommendation{
		Task:   best.Task,
		Reason: reason,
		Explanation: Explain(ExplainInput{
			Task:         best.Task,
			Reason:       reason,
			Goal:         goal,
			DaysUntilDue: best.DaysUntilDue,
			HasDeadline:  best.HasDeadline,
			WindowEnd:    req.WindowEnd,
			WindowSource: req.WindowSource,
		}),
		Minutes: minutes,
	}
}

func (r *Ranker) score(task model.Task, req Request) ScoredCandidate {
	c := ScoredCandidate{Task: task}
	c.DaysUntilDue, c.HasDeadline = ParseDeadline(task.Deadline, req.Now)
	c.Pressure = Pressure(task, req.Now)
	c.EnergyFit = EnergyFit(task.EstimatedMinutes, req.Energy)
	c.DurationFit = DurationFit(task.EstimatedMinutes, req.AvailableMinutes)
	c.Score = r.Weights.Pressure*c.Pressure +
		r.Weights.EnergyFit*c.EnergyFit +
		r.Weights.DurationFit*c.DurationFit
	return c
}

func eligible(task model.Task, excluded map[string]bool) bool {
	if task.Completed || task.InProgress {
		return false
	}
	if excluded[task.ID] {
		return false
	}
	return !isReminder(task)
}

// isReminder marks tasks whose deadline text signals no actionable urgency.
// They live in the list as passive notes and never rank.
func isReminder(task model.Task) bool {
	deadline := strings.ToLower(strings.TrimSpace(task.Deadline))
	return deadline == "reminder" || deadline == "when you have time"
}
