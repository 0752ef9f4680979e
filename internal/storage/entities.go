package storage

import "time"

type Task struct {
	ID               string
	Title            string
	EstimatedMinutes int
	Deadline         string
	GoalID           string
	Type             string
	Completed        bool
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

type Goal struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

type TaskListFilter struct {
	Type      string
	GoalID    string
	Completed *bool
	Limit     int
	Offset    int
}

type GoalListFilter struct {
	Limit  int
	Offset int
}
