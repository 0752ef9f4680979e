package recommend

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/nextup/internal/model"
)

// ExplainInput carries everything the explanation depends on. Explain is a
// pure function of this value; calling it twice yields the same string.
type ExplainInput struct {
	Task         model.Task
	Reason       model.ReasonType
	Goal         *model.Goal
	DaysUntilDue float64
	HasDeadline  bool
	WindowEnd    time.Time
	WindowSource model.WindowSource
}

// Explain produces the one-sentence rationale shown with a recommendation.
// The tone is deliberately calm: deadline proximity is framed as preserved
// options and available space, never as pressure on the reader. When the
// window came from a calendar suggestion the text says "before your next
// commitment" instead of naming the event.
func Explain(in ExplainInput) string {
	window := windowPhrase(in.WindowEnd, in.WindowSource)

	switch in.Reason {
	case model.ReasonCorePressure:
		return explainCorePressure(in, window)
	case model.ReasonGrowthOpportunity:
		return explainGrowthOpportunity(in, window)
	default:
		return fmt.Sprintf("%q fits well with your available time and energy %s.", in.Task.Title, window)
	}
}

func explainCorePressure(in ExplainInput, window string) string {
	if !in.HasDeadline {
		return fmt.Sprintf("%q fits well with your available time and energy %s.", in.Task.Title, window)
	}
	switch {
	case in.DaysUntilDue < 0.5:
		return fmt.Sprintf("%q fits the time you have %s, and addressing it now preserves your options for later.", in.Task.Title, window)
	case in.DaysUntilDue <= 1:
		return fmt.Sprintf("You have space now, before this becomes more constrained: %q fits the time you have %s.", in.Task.Title, window)
	case in.DaysUntilDue <= 3:
		return fmt.Sprintf("%q is approaching its deadline, and working on it %s prevents future constraints.", in.Task.Title, window)
	case in.DaysUntilDue <= 7:
		return fmt.Sprintf("%q is coming up, and it aligns well with the time you have %s and your current energy.", in.Task.Title, window)
	default:
		return fmt.Sprintf("%q fits well with your available time and energy %s.", in.Task.Title, window)
	}
}

func explainGrowthOpportunity(in ExplainInput, window string) string {
	if in.Goal != nil {
		return fmt.Sprintf("Working on %q is a chance to make progress toward %q with the time you have %s.", in.Task.Title, in.Goal.Title, window)
	}
	return fmt.Sprintf("Working on %q is a good opportunity for the time you have %s.", in.Task.Title, window)
}

func windowPhrase(end time.Time, source model.WindowSource) string {
	if source == model.SourceCalendarSuggested {
		return "before your next commitment"
	}
	return "until " + end.Format("3:04 PM")
}
