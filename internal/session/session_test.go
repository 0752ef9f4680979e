package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/nextup/internal/calendar"
	"github.com/sandeepkv93/nextup/internal/model"
)

var sessionNow = time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)

func newTestSession(events calendar.NextEventSource) *Session {
	return New(Config{
		Events:          events,
		AdvisoryTimeout: 100 * time.Millisecond,
		Clock:           fixedClock(sessionNow),
	})
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "core", Title: "Submit expense form", EstimatedMinutes: 20, Deadline: "today if possible", Type: model.TaskTypeCoreObligation},
		{ID: "growth", Title: "Practice sketching", EstimatedMinutes: 45, Deadline: "someday plans", Type: model.TaskTypeGrowth, GoalID: "goal-1"},
	}
}

func TestAskConfirmProducesRecommendation(t *testing.T) {
	s := newTestSession(nil)
	s.SetSnapshot(sampleTasks(), []model.Goal{{ID: "goal-1", Title: "Get better at drawing"}})
	s.SetEnergy(model.EnergyLow)

	if suggestion := s.Ask(context.Background()); suggestion != nil {
		t.Fatalf("expected no suggestion without a source, got %+v", suggestion)
	}
	if s.State() != StateAwaitingConfirmation {
		t.Fatalf("expected awaiting-confirmation, got %q", s.State())
	}

	rec, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if rec == nil || rec.Task.ID != "core" {
		t.Fatalf("expected core task recommendation, got %+v", rec)
	}
	if s.Current() == nil {
		t.Fatal("expected current recommendation to be tracked")
	}
	if s.Window() == nil || s.Window().Minutes() != DefaultWindowMinutes {
		t.Fatalf("expected %d-minute default window, got %+v", DefaultWindowMinutes, s.Window())
	}
}

func TestAskDegradesOnAdvisoryError(t *testing.T) {
	failing := calendar.SourceFunc(func(context.Context, time.Time) (*calendar.Event, error) {
		return nil, errors.New("calendar unreachable")
	})
	s := newTestSession(failing)
	s.SetSnapshot(sampleTasks(), nil)

	if suggestion := s.Ask(context.Background()); suggestion != nil {
		t.Fatalf("expected nil suggestion on error, got %+v", suggestion)
	}
	if s.State() != StateAwaitingConfirmation {
		t.Fatalf("expected negotiation to proceed despite error, got %q", s.State())
	}
	_, source := s.Negotiator().Proposed()
	if source != model.SourceSystemDefault {
		t.Fatalf("expected system-default fallback, got %q", source)
	}
}

func TestAskDegradesOnAdvisoryTimeout(t *testing.T) {
	slow := calendar.SourceFunc(func(ctx context.Context, _ time.Time) (*calendar.Event, error) {
		select {
		case <-time.After(5 * time.Second):
			return &calendar.Event{Start: sessionNow.Add(time.Hour), Name: "Too slow"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	s := newTestSession(slow)
	s.SetSnapshot(sampleTasks(), nil)

	start := time.Now()
	suggestion := s.Ask(context.Background())
	if suggestion != nil {
		t.Fatalf("expected nil suggestion on timeout, got %+v", suggestion)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("advisory fetch blocked for %v", elapsed)
	}
	if s.State() != StateAwaitingConfirmation {
		t.Fatalf("expected awaiting-confirmation after timeout, got %q", s.State())
	}
}

func TestAskUsesCalendarSuggestion(t *testing.T) {
	src := &calendar.StaticSource{Events: []calendar.Event{
		{Start: sessionNow.Add(15 * time.Minute), Name: "Sync with Priya"},
	}}
	s := newTestSession(src)
	s.SetSnapshot(sampleTasks(), nil)

	suggestion := s.Ask(context.Background())
	if suggestion == nil || suggestion.Name != "Sync with Priya" {
		t.Fatalf("expected calendar suggestion, got %+v", suggestion)
	}

	rec, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if rec == nil {
		t.Fatal("expected recommendation")
	}
	if s.Window().Source != model.SourceCalendarSuggested {
		t.Fatalf("expected calendar-suggested window, got %q", s.Window().Source)
	}
	if s.Window().Minutes() != 15 {
		t.Fatalf("expected 15 available minutes, got %d", s.Window().Minutes())
	}
}

func TestConfirmWithNoEligibleTasksEndsSession(t *testing.T) {
	s := newTestSession(nil)
	s.SetSnapshot([]model.Task{
		{ID: "note", Title: "Passive note", EstimatedMinutes: 20, Deadline: "reminder", Type: model.TaskTypeGeneral},
	}, nil)

	s.Ask(context.Background())
	rec, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil recommendation, got %+v", rec)
	}
	if s.State() != StateIdle {
		t.Fatalf("expected session to end, got %q", s.State())
	}
}

func TestAcceptEndsSessionWithoutMutatingTasks(t *testing.T) {
	tasks := sampleTasks()
	s := newTestSession(nil)
	s.SetSnapshot(tasks, nil)

	s.Ask(context.Background())
	if _, err := s.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	s.Accept()

	if s.State() != StateIdle || s.Current() != nil || s.Window() != nil {
		t.Fatal("expected session fully ended after accept")
	}
	for _, task := range tasks {
		if task.Completed || task.InProgress {
			t.Fatalf("accept must not mutate tasks, got %+v", task)
		}
	}
}

// Scenario: suggest-another with a single eligible task ends the session.
func TestSuggestAnotherExhaustsCandidates(t *testing.T) {
	s := newTestSession(nil)
	s.SetSnapshot([]model.Task{
		{ID: "only", Title: "The only task", EstimatedMinutes: 20, Deadline: "today", Type: model.TaskTypeCoreObligation},
	}, nil)

	s.Ask(context.Background())
	rec, err := s.Confirm()
	if err != nil || rec == nil {
		t.Fatalf("confirm: rec=%+v err=%v", rec, err)
	}

	if next := s.SuggestAnother(); next != nil {
		t.Fatalf("expected nil on exhausted candidates, got %+v", next)
	}
	if s.State() != StateIdle {
		t.Fatalf("expected session to end, got %q", s.State())
	}
}

func TestSuggestAnotherMovesToNextTask(t *testing.T) {
	s := newTestSession(nil)
	s.SetSnapshot(sampleTasks(), nil)
	s.SetEnergy(model.EnergyLow)

	s.Ask(context.Background())
	first, err := s.Confirm()
	if err != nil || first == nil {
		t.Fatalf("confirm: rec=%+v err=%v", first, err)
	}

	second := s.SuggestAnother()
	if second == nil {
		t.Fatal("expected a second recommendation")
	}
	if second.Task.ID == first.Task.ID {
		t.Fatalf("expected a different task, got %q twice", second.Task.ID)
	}
}

func TestEnergyChangeRecomputesActiveRecommendation(t *testing.T) {
	// At low energy the 20-minute task wins on fit; at high energy the
	// 45-minute growth task's energy fit jumps from 40 to 100 while the
	// short task's drops to 80, flipping the ranking.
	tasks := []model.Task{
		{ID: "short-general", Title: "Quick form", EstimatedMinutes: 20, Deadline: "someday idea", Type: model.TaskTypeGeneral},
		{ID: "long-growth", Title: "Deep practice", EstimatedMinutes: 45, Deadline: "someday plans", Type: model.TaskTypeGrowth},
	}
	s := newTestSession(nil)
	s.SetSnapshot(tasks, nil)
	s.SetEnergy(model.EnergyLow)

	s.Ask(context.Background())
	first, err := s.Confirm()
	if err != nil || first == nil {
		t.Fatalf("confirm: rec=%+v err=%v", first, err)
	}
	if first.Task.ID != "short-general" {
		t.Fatalf("expected short task at low energy, got %q", first.Task.ID)
	}

	second := s.SetEnergy(model.EnergyHigh)
	if second == nil {
		t.Fatal("expected recomputed recommendation")
	}
	if second.Task.ID != "long-growth" {
		t.Fatalf("expected long task at high energy, got %q", second.Task.ID)
	}
}

func TestEnergyChangeClearsSuggestAnotherExclusions(t *testing.T) {
	s := newTestSession(nil)
	s.SetSnapshot(sampleTasks(), nil)
	s.SetEnergy(model.EnergyLow)

	s.Ask(context.Background())
	first, err := s.Confirm()
	if err != nil || first == nil {
		t.Fatalf("confirm: rec=%+v err=%v", first, err)
	}
	if s.SuggestAnother() == nil {
		t.Fatal("expected second recommendation")
	}

	// Re-ranking on energy change drops the exclusion set, so the first
	// task is back in contention and wins again at low energy.
	rec := s.SetEnergy(model.EnergyLow)
	if rec == nil || rec.Task.ID != first.Task.ID {
		t.Fatalf("expected original winner after exclusions reset, got %+v", rec)
	}
}

func TestEnergyChangeBeforeConfirmationDoesNotRank(t *testing.T) {
	s := newTestSession(nil)
	s.SetSnapshot(sampleTasks(), nil)
	s.Ask(context.Background())

	if rec := s.SetEnergy(model.EnergyHigh); rec != nil {
		t.Fatalf("expected no recommendation before confirmation, got %+v", rec)
	}
	if s.State() != StateAwaitingConfirmation {
		t.Fatalf("expected negotiation untouched, got %q", s.State())
	}
}

func TestDismissBeforeConfirmationLeavesNoResidue(t *testing.T) {
	src := &calendar.StaticSource{Events: []calendar.Event{
		{Start: sessionNow.Add(20 * time.Minute), Name: "Standup"},
	}}
	s := newTestSession(src)
	s.SetSnapshot(sampleTasks(), nil)

	s.Ask(context.Background())
	s.Dismiss()
	if s.State() != StateIdle || s.Window() != nil || s.Current() != nil {
		t.Fatal("expected clean state after dismiss")
	}

	// The next session starts from scratch.
	s2 := newTestSession(nil)
	s2.SetSnapshot(sampleTasks(), nil)
	s2.Ask(context.Background())
	_, source := s2.Negotiator().Proposed()
	if source != model.SourceSystemDefault {
		t.Fatalf("expected fresh default proposal, got %q", source)
	}
}

func TestInvalidEnergyLevelIgnored(t *testing.T) {
	s := newTestSession(nil)
	s.SetEnergy(model.EnergyLow)
	s.SetEnergy(model.EnergyLevel("caffeinated"))
	if s.Energy() != model.EnergyLow {
		t.Fatalf("expected invalid level ignored, got %q", s.Energy())
	}
}
