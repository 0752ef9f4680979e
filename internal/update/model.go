package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/nextup/internal/calendar"
	"github.com/sandeepkv93/nextup/internal/model"
	"github.com/sandeepkv93/nextup/internal/recommend"
	"github.com/sandeepkv93/nextup/internal/session"
)

type View string

const (
	ViewTasks     View = "Tasks"
	ViewRecommend View = "Recommend"
	ViewGoals     View = "Goals"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Persister is the slice of the storage layer the TUI needs for writes.
// Reads happen once at startup; the in-memory snapshot is authoritative
// while the program runs.
type Persister interface {
	MarkTaskDone(ctx context.Context, id string, done bool, at time.Time) error
	DeleteGoal(ctx context.Context, id string) error
}

type NoopPersister struct{}

func (NoopPersister) MarkTaskDone(context.Context, string, bool, time.Time) error { return nil }
func (NoopPersister) DeleteGoal(context.Context, string) error                    { return nil }

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView View
	Tasks       []model.Task
	Goals       []model.Goal
	Cursor      int
	GoalCursor  int
	ShowDone    bool

	Session   *session.Session
	persister Persister
	clock     func() time.Time

	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           KeyMap
	Quitting       bool
	LastError      error
	LastSuggestion *calendar.Event
	NegotiationErr string

	trace *traceRing

	taskList     list.Model
	commandInput textinput.Model
	windowInput  textinput.Model
}

type KeyMap struct {
	Tasks     string
	Recommend string
	Goals     string
	Help      string
	Quit      string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SetTasksMsg struct {
	Tasks []model.Task
}

type SetGoalsMsg struct {
	Goals []model.Goal
}

type TaskSavedMsg struct {
	ID  string
	Err error
}

type GoalDeletedMsg struct {
	ID  string
	Err error
}

func NewModel() Model {
	return NewModelWithConfig(nil, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(events calendar.NextEventSource, persister Persister, cfg RuntimeConfig) Model {
	trace := newTraceRing(traceRingSize)
	var tracer recommend.Tracer
	if cfg.TraceScoring {
		tracer = trace
	}

	m := Model{
		CurrentView: ViewTasks,
		ShowDone:    cfg.ShowDone,
		Session: session.New(session.Config{
			Events:          events,
			Tracer:          tracer,
			AdvisoryTimeout: time.Duration(cfg.AdvisoryTimeoutMS) * time.Millisecond,
		}),
		persister: NoopPersister{},
		clock:     time.Now,
		trace:     trace,
		Keys: KeyMap{
			Tasks:     "1",
			Recommend: "2",
			Goals:     "3",
			Help:      "?",
			Quit:      "q",
		},
	}
	if persister != nil {
		m.persister = persister
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	delegate := list.NewDefaultDelegate()
	m.taskList = list.New(nil, delegate, 56, 12)
	m.taskList.SetShowHelp(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetFilteringEnabled(false)
	m.taskList.Title = "tasks"

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "command"
	m.commandInput.CharLimit = 120

	m.windowInput = textinput.New()
	m.windowInput.Placeholder = "HH:MM"
	m.windowInput.CharLimit = 5
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if task.Completed && !m.ShowDone {
			continue
		}
		items = append(items, listItem{title: task.Title, description: task.Deadline})
	}
	m.taskList.SetItems(items)
}

// SetSnapshot replaces the working set and pushes it into the session so
// the next ranking sees the same data the panels show.
func (m *Model) SetSnapshot(tasks []model.Task, goals []model.Goal) {
	m.Tasks = tasks
	m.Goals = goals
	m.Session.SetSnapshot(tasks, goals)
	if m.Cursor >= len(tasks) {
		m.Cursor = 0
	}
	if m.GoalCursor >= len(goals) {
		m.GoalCursor = 0
	}
	m.syncBubbleData()
}

func (m *Model) notify(title, body, level string) {
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.clock(),
	})
	if len(m.Notifications) > 10 {
		m.Notifications = m.Notifications[len(m.Notifications)-10:]
	}
}
