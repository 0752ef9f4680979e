package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nextup/internal/calendar"
	"github.com/sandeepkv93/nextup/internal/model"
	"github.com/sandeepkv93/nextup/internal/storage"
	"github.com/sandeepkv93/nextup/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nextup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx := context.Background()
	tasks, goals, err := loadSnapshot(ctx, repo)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	var events calendar.NextEventSource
	if cfg.CalendarEnabled {
		source, calErr := calendar.NewGoogleSource(ctx, cfg.CredentialsPath, cfg.TokenPath, cfg.CalendarName)
		if calErr != nil {
			// The calendar is advisory; start without it rather than fail.
			fmt.Fprintf(os.Stderr, "calendar disabled: %v\n", calErr)
		} else {
			events = source
		}
	}

	m := update.NewModelWithConfig(events, &repoPersister{repo: repo}, cfg)
	m.SetSnapshot(tasks, goals)

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func loadSnapshot(ctx context.Context, repo *storage.SQLiteRepository) ([]model.Task, []model.Goal, error) {
	taskRows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, nil, err
	}
	goalRows, err := repo.ListGoals(ctx, storage.GoalListFilter{})
	if err != nil {
		return nil, nil, err
	}

	tasks := make([]model.Task, 0, len(taskRows))
	for _, row := range taskRows {
		tasks = append(tasks, model.Task{
			ID:               row.ID,
			Title:            row.Title,
			EstimatedMinutes: row.EstimatedMinutes,
			Deadline:         row.Deadline,
			GoalID:           row.GoalID,
			Type:             model.TaskType(row.Type),
			Completed:        row.Completed,
		})
	}
	goals := make([]model.Goal, 0, len(goalRows))
	for _, row := range goalRows {
		goals = append(goals, model.Goal{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
		})
	}
	return tasks, goals, nil
}

// repoPersister adapts the sqlite repository to the writes the TUI performs.
type repoPersister struct {
	repo *storage.SQLiteRepository
}

func (p *repoPersister) MarkTaskDone(ctx context.Context, id string, done bool, at time.Time) error {
	task, err := p.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	task.Completed = done
	if done {
		task.CompletedAt = &at
	} else {
		task.CompletedAt = nil
	}
	return p.repo.UpdateTask(ctx, task)
}

func (p *repoPersister) DeleteGoal(ctx context.Context, id string) error {
	return p.repo.DeleteGoal(ctx, id)
}
