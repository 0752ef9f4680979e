package recommend

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/nextup/internal/model"
)

var explainEnd = time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC)

func corePressureInput(days float64) ExplainInput {
	return ExplainInput{
		Task:         model.Task{ID: "t", Title: "File the report", EstimatedMinutes: 25, Type: model.TaskTypeCoreObligation},
		Reason:       model.ReasonCorePressure,
		DaysUntilDue: days,
		HasDeadline:  true,
		WindowEnd:    explainEnd,
		WindowSource: model.SourceUser,
	}
}

func TestExplainCorePressureBuckets(t *testing.T) {
	cases := []struct {
		name string
		days float64
		want string
	}{
		{name: "due now", days: 0.2, want: "preserves your options for later"},
		{name: "due within a day", days: 1, want: "You have space now, before this becomes more constrained"},
		{name: "due within three days", days: 2.5, want: "approaching its deadline"},
		{name: "due within a week", days: 6, want: "coming up"},
		{name: "far out", days: 20, want: "fits well with your available time and energy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Explain(corePressureInput(tc.days))
			if !strings.Contains(got, tc.want) {
				t.Fatalf("expected %q in explanation, got %q", tc.want, got)
			}
		})
	}
}

func TestExplainCorePressureWithoutDeadlineIsGeneric(t *testing.T) {
	in := corePressureInput(0)
	in.HasDeadline = false
	got := Explain(in)
	if !strings.Contains(got, "fits well with your available time and energy") {
		t.Fatalf("expected generic phrasing, got %q", got)
	}
}

func TestExplainGrowthWithGoalReferencesTitle(t *testing.T) {
	in := ExplainInput{
		Task:         model.Task{ID: "t", Title: "Practice scales", EstimatedMinutes: 20, Type: model.TaskTypeGrowth},
		Reason:       model.ReasonGrowthOpportunity,
		Goal:         &model.Goal{ID: "g", Title: "Learn piano"},
		WindowEnd:    explainEnd,
		WindowSource: model.SourceUser,
	}
	got := Explain(in)
	if !strings.Contains(got, `"Learn piano"`) {
		t.Fatalf("expected goal title in explanation, got %q", got)
	}
}

func TestExplainGrowthWithoutGoalIsGenericOpportunity(t *testing.T) {
	in := ExplainInput{
		Task:         model.Task{ID: "t", Title: "Sketch for fun", EstimatedMinutes: 20, Type: model.TaskTypeGrowth},
		Reason:       model.ReasonGrowthOpportunity,
		WindowEnd:    explainEnd,
		WindowSource: model.SourceSystemDefault,
	}
	got := Explain(in)
	if !strings.Contains(got, "good opportunity") {
		t.Fatalf("expected generic opportunity phrasing, got %q", got)
	}
}

func TestExplainNeverNamesCalendarEvent(t *testing.T) {
	in := corePressureInput(1)
	in.WindowSource = model.SourceCalendarSuggested
	got := Explain(in)
	if !strings.Contains(got, "before your next commitment") {
		t.Fatalf("expected commitment phrasing for calendar window, got %q", got)
	}
	if strings.Contains(got, "3:30") {
		t.Fatalf("calendar-suggested window must not surface a clock time, got %q", got)
	}
}

func TestExplainReferencesClockTimeForUserWindow(t *testing.T) {
	got := Explain(corePressureInput(1))
	if !strings.Contains(got, "until 3:30 PM") {
		t.Fatalf("expected formatted clock time, got %q", got)
	}
}

// The product constraint: nothing the generator says may lean on urgency or
// guilt, in any branch. Matching is on whole words so "later" stays allowed.
func TestExplainAvoidsUrgencyAndGuiltLanguage(t *testing.T) {
	banned := []*regexp.Regexp{
		regexp.MustCompile(`\boverdue\b`),
		regexp.MustCompile(`\blate\b`),
		regexp.MustCompile(`\burgent(ly)?\b`),
		regexp.MustCompile(`\bhurry\b`),
		regexp.MustCompile(`\bbehind\b`),
		regexp.MustCompile(`\bshould have\b`),
		regexp.MustCompile(`\bmust\b`),
	}

	inputs := []ExplainInput{
		corePressureInput(0.2),
		corePressureInput(1),
		corePressureInput(2.5),
		corePressureInput(6),
		corePressureInput(30),
		{
			Task:         model.Task{ID: "t", Title: "Stretch goal", EstimatedMinutes: 20, Type: model.TaskTypeGrowth},
			Reason:       model.ReasonGrowthOpportunity,
			Goal:         &model.Goal{ID: "g", Title: "Run a marathon"},
			WindowEnd:    explainEnd,
			WindowSource: model.SourceCalendarSuggested,
		},
	}
	for _, in := range inputs {
		got := strings.ToLower(Explain(in))
		for _, word := range banned {
			if word.MatchString(got) {
				t.Fatalf("explanation %q contains banned word %q", got, word.String())
			}
		}
	}
}

func TestExplainIsPure(t *testing.T) {
	in := corePressureInput(2)
	first := Explain(in)
	for i := 0; i < 5; i++ {
		if got := Explain(in); got != first {
			t.Fatalf("explanation changed between calls: %q vs %q", first, got)
		}
	}
}
