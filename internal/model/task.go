package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTaskType = errors.New("model: invalid task type")
	ErrInvalidEnergy   = errors.New("model: invalid energy level")
)

type TaskType string

const (
	TaskTypeCoreObligation TaskType = "core-obligation"
	TaskTypeGrowth         TaskType = "growth"
	TaskTypeGeneral        TaskType = "general"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeCoreObligation, TaskTypeGrowth, TaskTypeGeneral:
		return true
	default:
		return false
	}
}

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// Task is a unit of work the recommendation engine can propose. The engine
// treats tasks as read-only snapshots; only the storage layer mutates them.
// InProgress is session-local and never persisted.
type Task struct {
	ID               string
	Title            string
	EstimatedMinutes int
	Deadline         string
	GoalID           string
	Type             TaskType
	Completed        bool
	InProgress       bool
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.EstimatedMinutes <= 0 {
		return errors.New("model: task estimated_minutes must be positive")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskType, t.Type)
	}
	return nil
}

// Goal groups tasks under a larger intention. Tasks reference goals weakly:
// deleting a goal clears the reference on its tasks but leaves them valid.
type Goal struct {
	ID          string
	Title       string
	Description string
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	return nil
}

// GoalByID resolves a task's goal reference against a snapshot. A dangling
// or empty reference resolves to nothing rather than an error.
func GoalByID(goals []Goal, id string) (Goal, bool) {
	if strings.TrimSpace(id) == "" {
		return Goal{}, false
	}
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}
