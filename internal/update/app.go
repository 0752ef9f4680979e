package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nextup/internal/model"
	"github.com/sandeepkv93/nextup/internal/session"
	"github.com/sandeepkv93/nextup/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		keyStr := typed.String()
		if m.CurrentView == ViewRecommend && m.Session.State() == session.StateAwaitingConfirmation {
			return m.handleNegotiationKey(typed)
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Recommend:
			m.CurrentView = ViewRecommend
			return m, nil
		case m.Keys.Goals:
			m.CurrentView = ViewGoals
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewRecommend:
			return m.handleRecommendKey(typed)
		case ViewGoals:
			return m.handleGoalsKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SetTasksMsg:
		m.SetSnapshot(typed.Tasks, m.Goals)
		return m, nil
	case SetGoalsMsg:
		m.SetSnapshot(m.Tasks, typed.Goals)
		return m, nil
	case TaskSavedMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("save failed for %s: %v", typed.ID, typed.Err), IsError: true}
			m.LastError = typed.Err
		}
		return m, nil
	case GoalDeletedMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("delete failed for %s: %v", typed.ID, typed.Err), IsError: true}
			m.LastError = typed.Err
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleTasks()
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "v":
		m.ShowDone = !m.ShowDone
		m.Cursor = 0
		m.syncBubbleData()
	case "enter":
		if m.Cursor >= len(visible) {
			return m, nil
		}
		id := visible[m.Cursor].ID
		return m.toggleTaskDone(id)
	}
	return m, nil
}

func (m Model) toggleTaskDone(id string) (tea.Model, tea.Cmd) {
	for i := range m.Tasks {
		if m.Tasks[i].ID != id {
			continue
		}
		m.Tasks[i].Completed = !m.Tasks[i].Completed
		done := m.Tasks[i].Completed
		m.Session.SetSnapshot(m.Tasks, m.Goals)
		m.syncBubbleData()
		if done {
			m.Status = StatusBar{Text: fmt.Sprintf("done: %s", m.Tasks[i].Title), IsError: false}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", m.Tasks[i].Title), IsError: false}
		}
		persister := m.persister
		at := m.clock()
		return m, func() tea.Msg {
			err := persister.MarkTaskDone(context.Background(), id, done, at)
			return TaskSavedMsg{ID: id, Err: err}
		}
	}
	return m, nil
}

func (m Model) handleRecommendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "r":
		if m.Session.Current() == nil {
			return m.startAsk()
		}
	case "y":
		if m.Session.Current() != nil {
			m.Session.Accept()
			m.trace.Reset()
			m.Status = StatusBar{Text: "sounds good, session ended", IsError: false}
		}
	case "n":
		if m.Session.Current() != nil {
			m.trace.Reset()
			if rec := m.Session.SuggestAnother(); rec != nil {
				m.Status = StatusBar{Text: fmt.Sprintf("how about: %s", rec.Task.Title), IsError: false}
			} else {
				m.Status = StatusBar{Text: "no other tasks fit this window", IsError: false}
			}
		}
	case "e":
		return m.cycleEnergy()
	case "esc":
		if m.Session.State() != session.StateIdle || m.Session.Current() != nil {
			m.Session.Dismiss()
			m.trace.Reset()
			m.Status = StatusBar{Text: "dismissed", IsError: false}
		}
	}
	return m, nil
}

func (m Model) startAsk() (tea.Model, tea.Cmd) {
	m.NegotiationErr = ""
	m.windowInput.SetValue("")
	m.windowInput.Focus()
	m.LastSuggestion = m.Session.Ask(context.Background())
	if m.LastSuggestion != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("free until %s (%s)", m.LastSuggestion.Start.Format("3:04 PM"), m.LastSuggestion.Name), IsError: false}
	} else {
		m.Status = StatusBar{Text: "how long do you have?", IsError: false}
	}
	return m, nil
}

func (m Model) handleNegotiationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.Focus()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case "esc":
		m.Session.Dismiss()
		m.windowInput.SetValue("")
		m.NegotiationErr = ""
		m.Status = StatusBar{Text: "dismissed", IsError: false}
		return m, nil
	case "a":
		return m.pickPreset(20)
	case "s":
		return m.pickPreset(40)
	case "d":
		return m.pickPreset(60)
	case "backspace":
		v := m.windowInput.Value()
		if v != "" {
			m.windowInput.SetValue(v[:len(v)-1])
		}
		return m, nil
	case "enter":
		if raw := strings.TrimSpace(m.windowInput.Value()); raw != "" {
			end, err := parseClockToday(m.clock(), raw)
			if err != nil {
				m.NegotiationErr = err.Error()
				return m, nil
			}
			if err := m.Session.Negotiator().SetEndTime(end); err != nil {
				m.NegotiationErr = err.Error()
				return m, nil
			}
			m.windowInput.SetValue("")
			m.NegotiationErr = ""
			return m, nil
		}
		return m.confirmWindow()
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == ':' {
				m.windowInput.SetValue(m.windowInput.Value() + string(r))
			}
		}
	}
	return m, nil
}

func (m Model) pickPreset(minutes int) (tea.Model, tea.Cmd) {
	if err := m.Session.Negotiator().PickPreset(minutes); err != nil {
		m.NegotiationErr = err.Error()
		return m, nil
	}
	m.NegotiationErr = ""
	m.Status = StatusBar{Text: fmt.Sprintf("window set to %d minutes", minutes), IsError: false}
	return m, nil
}

func (m Model) confirmWindow() (tea.Model, tea.Cmd) {
	rec, err := m.Session.Confirm()
	if err != nil {
		m.NegotiationErr = err.Error()
		return m, nil
	}
	m.NegotiationErr = ""
	m.windowInput.Blur()
	if rec == nil {
		m.Status = StatusBar{Text: "nothing fits this window right now", IsError: false}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("next up: %s", rec.Task.Title), IsError: false}
	return m, nil
}

func (m Model) cycleEnergy() (tea.Model, tea.Cmd) {
	next := map[model.EnergyLevel]model.EnergyLevel{
		model.EnergyLow:    model.EnergyMedium,
		model.EnergyMedium: model.EnergyHigh,
		model.EnergyHigh:   model.EnergyLow,
	}[m.Session.Energy()]

	m.trace.Reset()
	rec := m.Session.SetEnergy(next)
	if rec != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("energy %s, next up: %s", next, rec.Task.Title), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("energy set to %s", next), IsError: false}
	}
	return m, nil
}

func (m Model) handleGoalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.GoalCursor < len(m.Goals)-1 {
			m.GoalCursor++
		}
	case "k", "up":
		if m.GoalCursor > 0 {
			m.GoalCursor--
		}
	case "x":
		if m.GoalCursor >= len(m.Goals) {
			return m, nil
		}
		return m.deleteGoal(m.Goals[m.GoalCursor].ID)
	}
	return m, nil
}

// deleteGoal removes a goal and clears the reference on any task that
// pointed at it, mirroring what the database does on delete.
func (m Model) deleteGoal(id string) (tea.Model, tea.Cmd) {
	goals := make([]model.Goal, 0, len(m.Goals))
	title := ""
	for _, g := range m.Goals {
		if g.ID == id {
			title = g.Title
			continue
		}
		goals = append(goals, g)
	}
	for i := range m.Tasks {
		if m.Tasks[i].GoalID == id {
			m.Tasks[i].GoalID = ""
		}
	}
	m.SetSnapshot(m.Tasks, goals)
	m.Status = StatusBar{Text: fmt.Sprintf("deleted goal: %s", title), IsError: false}

	persister := m.persister
	return m, func() tea.Msg {
		err := persister.DeleteGoal(context.Background(), id)
		return GoalDeletedMsg{ID: id, Err: err}
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderPaletteView() + m.renderHelpIfVisible()
	case ViewRecommend:
		leftPane = m.renderRecommendView()
		rightPane = m.renderRecommendationCard() + m.renderHelpIfVisible()
	case ViewGoals:
		leftPane = m.renderGoalsView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := strings.TrimSpace(strings.Join([]string{
		strings.TrimSpace(m.renderNotificationsView()),
		strings.TrimSpace(m.renderTraceView()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("nextup | view: %s | energy: %s", m.CurrentView, m.Session.Energy()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s tasks | %s recommend | %s goals | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Recommend, m.Keys.Goals, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTasksView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	selectedID := ""
	visible := m.visibleTasks()
	if m.Cursor < len(visible) {
		selectedID = visible[m.Cursor].ID
	}
	for _, task := range m.Tasks {
		goalTitle := ""
		if goal, ok := model.GoalByID(m.Goals, task.GoalID); ok {
			goalTitle = goal.Title
		}
		items = append(items, views.TaskItemData{
			ID:        task.ID,
			Title:     task.Title,
			Minutes:   task.EstimatedMinutes,
			Deadline:  task.Deadline,
			Type:      string(task.Type),
			GoalTitle: goalTitle,
			Completed: task.Completed,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ListView:   m.taskList.View(),
		Items:      items,
		SelectedID: selectedID,
		ShowDone:   m.ShowDone,
	})
}

func (m Model) renderRecommendView() string {
	if m.Session.State() == session.StateAwaitingConfirmation {
		end, source := m.Session.Negotiator().Proposed()
		eventName := ""
		if m.LastSuggestion != nil && source == model.SourceCalendarSuggested {
			eventName = m.LastSuggestion.Name
		}
		minutes := int(end.Sub(m.clock()).Minutes())
		return views.RenderNegotiationPanel(views.NegotiationPanelData{
			Active:    true,
			EndTime:   end.Format("3:04 PM"),
			Minutes:   minutes,
			Source:    string(source),
			EventName: eventName,
			InputView: m.windowInput.View(),
			ErrorText: m.NegotiationErr,
		})
	}
	if m.Session.Current() != nil {
		return "session active, recommendation on the right"
	}
	return "press [enter] to ask what to do next"
}

func (m Model) renderRecommendationCard() string {
	rec := m.Session.Current()
	if rec == nil {
		return ""
	}
	goalTitle := ""
	if goal, ok := model.GoalByID(m.Goals, rec.Task.GoalID); ok {
		goalTitle = goal.Title
	}
	return views.RenderRecommendationCard(views.RecommendationCardData{
		Title:       rec.Task.Title,
		Minutes:     rec.Minutes,
		Reason:      string(rec.Reason),
		Explanation: rec.Explanation,
		GoalTitle:   goalTitle,
	})
}

func (m Model) renderGoalsView() string {
	items := make([]views.GoalItemData, 0, len(m.Goals))
	selectedID := ""
	if m.GoalCursor < len(m.Goals) {
		selectedID = m.Goals[m.GoalCursor].ID
	}
	for _, goal := range m.Goals {
		open := 0
		for _, task := range m.Tasks {
			if task.GoalID == goal.ID && !task.Completed {
				open++
			}
		}
		items = append(items, views.GoalItemData{ID: goal.ID, Title: goal.Title, OpenTasks: open})
	}
	return views.RenderGoalsPanel(views.GoalsPanelData{Items: items, SelectedID: selectedID})
}

func (m Model) renderPaletteView() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\nhelp:\n[1]tasks [2]recommend [3]goals\n/ask /energy <level> /window +N|HH:MM /another /accept /dismiss\ntasks: [j/k]move [enter]done [v]show-done\nrecommend: [enter]ask/confirm [a/s/d]presets [y]accept [n]another [e]energy [esc]dismiss\ngoals: [j/k]move [x]delete"
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	last := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(last.Level, last.Body)
}

func (m Model) renderTraceView() string {
	entries := m.trace.Entries()
	if len(entries) == 0 {
		return ""
	}
	data := make([]views.TraceEntryData, 0, len(entries))
	for _, e := range entries {
		data = append(data, views.TraceEntryData{
			TaskID:      e.Task.ID,
			Score:       e.Score,
			Pressure:    e.Pressure,
			EnergyFit:   e.EnergyFit,
			DurationFit: e.DurationFit,
		})
	}
	return views.RenderTracePanel(data)
}

func (m Model) visibleTasks() []model.Task {
	if m.ShowDone {
		return m.Tasks
	}
	out := make([]model.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if !task.Completed {
			out = append(out, task)
		}
	}
	return out
}

// parseClockToday resolves "HH:MM" to the next occurrence of that wall time:
// today if still ahead, otherwise tomorrow.
func parseClockToday(now time.Time, raw string) (time.Time, error) {
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end time %q, want HH:MM", raw)
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !end.After(now) {
		end = end.AddDate(0, 0, 1)
	}
	return end, nil
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewRecommend, ViewGoals:
		return true
	default:
		return false
	}
}
