package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateGoal(ctx context.Context, in Goal) error
	GetGoal(ctx context.Context, id string) (Goal, error)
	UpdateGoal(ctx context.Context, in Goal) error
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error)
}
