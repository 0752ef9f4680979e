package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Title     string
	Minutes   int
	Deadline  string
	Type      string
	GoalTitle string
	Completed bool
}

type TasksPanelData struct {
	ListView   string
	Items      []TaskItemData
	SelectedID string
	ShowDone   bool
}

type NegotiationPanelData struct {
	Active    bool
	EndTime   string
	Minutes   int
	Source    string
	EventName string
	InputView string
	ErrorText string
}

type RecommendationCardData struct {
	Title       string
	Minutes     int
	Reason      string
	Explanation string
	GoalTitle   string
}

type GoalItemData struct {
	ID        string
	Title     string
	OpenTasks int
}

type GoalsPanelData struct {
	Items      []GoalItemData
	SelectedID string
}

type TraceEntryData struct {
	TaskID      string
	Score       float64
	Pressure    float64
	EnergyFit   float64
	DurationFit float64
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString("actions: [j/k]move [enter]done [1]tasks [2]recommend [3]goals\n")
	if data.ListView != "" {
		b.WriteString(data.ListView + "\n")
	}
	visible := 0
	for _, item := range data.Items {
		if item.Completed && !data.ShowDone {
			continue
		}
		visible++
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s (%dm, %s)", cursor, mark, item.Title, item.Minutes, item.Type))
		if item.Deadline != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.Deadline))
		}
		if item.GoalTitle != "" {
			b.WriteString(fmt.Sprintf(" goal:%s", item.GoalTitle))
		}
		b.WriteString("\n")
	}
	if visible == 0 {
		b.WriteString("  (none)\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderNegotiationPanel(data NegotiationPanelData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("time-window:\n")
	b.WriteString(fmt.Sprintf("until %s (%d minutes, %s)\n", data.EndTime, data.Minutes, data.Source))
	if data.EventName != "" {
		b.WriteString(fmt.Sprintf("next up: %s\n", data.EventName))
	}
	b.WriteString("presets: [a]+20m [s]+40m [d]+60m | type HH:MM to edit\n")
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	b.WriteString("confirm: [enter] | cancel: [esc]\n")
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderRecommendationCard(data RecommendationCardData) string {
	if data.Title == "" {
		return "recommendation:\n(none yet, press [enter] to confirm your window)"
	}
	var b strings.Builder
	b.WriteString("recommendation:\n")
	b.WriteString(fmt.Sprintf("%s (%d minutes) [%s]\n", data.Title, data.Minutes, data.Reason))
	if data.GoalTitle != "" {
		b.WriteString(fmt.Sprintf("goal: %s\n", data.GoalTitle))
	}
	b.WriteString(RenderMarkdown(data.Explanation) + "\n")
	b.WriteString("actions: [y]accept [n]another [esc]dismiss")
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("goals:\n")
	b.WriteString("actions: [j/k]move [x]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("  (none)\n")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d open)\n", cursor, item.Title, item.OpenTasks))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderTracePanel(entries []TraceEntryData) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nscoring:\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("- %s score=%.1f pressure=%.1f energy=%.1f duration=%.1f\n",
			e.TaskID, e.Score, e.Pressure, e.EnergyFit, e.DurationFit))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
