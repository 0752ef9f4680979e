package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nextup-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-08-19T12:00:00Z")

	task := Task{
		ID:               "task-1",
		Title:            "Submit expense form",
		EstimatedMinutes: 20,
		Deadline:         "today if possible",
		Type:             "core-obligation",
		CreatedAt:        created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.EstimatedMinutes != 20 || got.Deadline != "today if possible" {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if got.Completed || got.CompletedAt != nil {
		t.Fatalf("expected open task, got: %#v", got)
	}

	doneAt := created.Add(time.Hour)
	task.Title = "Submit Q3 expense form"
	task.Completed = true
	task.CompletedAt = &doneAt
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	completed := true
	done, err := repo.ListTasks(ctx, TaskListFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(done) != 1 || done[0].ID != task.ID || done[0].CompletedAt == nil {
		t.Fatalf("unexpected completed list: %#v", done)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	_, err = repo.GetTask(ctx, task.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestListTasksByTypeAndGoal(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-08-19T12:00:00Z")

	goal := Goal{ID: "goal-1", Title: "Get better at drawing", CreatedAt: now}
	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	tasks := []Task{
		{ID: "a", Title: "Practice sketching", EstimatedMinutes: 45, Deadline: "when you have time", GoalID: goal.ID, Type: "growth", CreatedAt: now},
		{ID: "b", Title: "Renew passport", EstimatedMinutes: 30, Deadline: "this week", Type: "core-obligation", CreatedAt: now.Add(time.Minute)},
		{ID: "c", Title: "Sort photos", EstimatedMinutes: 60, Deadline: "someday", Type: "general", CreatedAt: now.Add(2 * time.Minute)},
	}
	for _, task := range tasks {
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create task %s: %v", task.ID, err)
		}
	}

	growth, err := repo.ListTasks(ctx, TaskListFilter{Type: "growth"})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(growth) != 1 || growth[0].ID != "a" {
		t.Fatalf("unexpected growth list: %#v", growth)
	}

	linked, err := repo.ListTasks(ctx, TaskListFilter{GoalID: goal.ID})
	if err != nil {
		t.Fatalf("list by goal: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != "a" {
		t.Fatalf("unexpected goal list: %#v", linked)
	}

	page, err := repo.ListTasks(ctx, TaskListFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 || page[0].ID != "b" || page[1].ID != "c" {
		t.Fatalf("unexpected page: %#v", page)
	}
}

func TestGoalCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-08-19T12:00:00Z")

	goal := Goal{
		ID:          "goal-1",
		Title:       "Learn Spanish",
		Description: "Conversational by spring",
		CreatedAt:   now,
	}
	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	got, err := repo.GetGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if got.Title != "Learn Spanish" || got.Description != "Conversational by spring" {
		t.Fatalf("unexpected goal: %#v", got)
	}

	goal.Title = "Learn Spanish properly"
	if err := repo.UpdateGoal(ctx, goal); err != nil {
		t.Fatalf("update goal: %v", err)
	}

	list, err := repo.ListGoals(ctx, GoalListFilter{})
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Learn Spanish properly" {
		t.Fatalf("unexpected goal list: %#v", list)
	}

	if err := repo.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	_, err = repo.GetGoal(ctx, goal.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeleteGoalClearsTaskReference(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-08-19T12:00:00Z")

	goal := Goal{ID: "goal-1", Title: "Ship the side project", CreatedAt: now}
	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	task := Task{
		ID:               "task-1",
		Title:            "Write the landing page",
		EstimatedMinutes: 40,
		Deadline:         "this week",
		GoalID:           goal.ID,
		Type:             "growth",
		CreatedAt:        now,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := repo.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task after goal delete: %v", err)
	}
	if got.GoalID != "" {
		t.Fatalf("expected cleared goal reference, got %q", got.GoalID)
	}
	if got.Title != task.Title || got.Type != "growth" {
		t.Fatalf("task mutated beyond goal reference: %#v", got)
	}
}

func TestCreateTaskRejectsUnknownGoal(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-08-19T12:00:00Z")

	err := repo.CreateTask(ctx, Task{
		ID:               "task-orphan",
		Title:            "Dangling reference",
		EstimatedMinutes: 10,
		GoalID:           "no-such-goal",
		Type:             "general",
		CreatedAt:        now,
	})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown goal")
	}
}
