package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for migrations at startup.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, estimated_minutes, deadline, goal_id, type, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.EstimatedMinutes, in.Deadline, nullString(in.GoalID), in.Type,
		boolInt(in.Completed), mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, estimated_minutes, deadline, goal_id, type, completed, created_at, completed_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, estimated_minutes = ?, deadline = ?, goal_id = ?, type = ?, completed = ?, completed_at = ?
		WHERE id = ?`,
		in.Title, in.EstimatedMinutes, in.Deadline, nullString(in.GoalID), in.Type,
		boolInt(in.Completed), nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, title, estimated_minutes, deadline, goal_id, type, completed, created_at, completed_at FROM tasks`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.GoalID != "" {
		clauses = append(clauses, "goal_id = ?")
		args = append(args, filter.GoalID)
	}
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, in Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, description, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, description, created_at FROM goals WHERE id = ?`, id)
	item, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, in Goal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE goals SET title = ?, description = ? WHERE id = ?`,
		in.Title, in.Description, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteGoal removes a goal. Tasks referencing it keep existing with the
// reference cleared, enforced by ON DELETE SET NULL on tasks.goal_id.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, title, description, created_at FROM goals ORDER BY title ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		item, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var goalID sql.NullString
	var completed int
	var created string
	var completedAt sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.EstimatedMinutes, &out.Deadline, &goalID, &out.Type, &completed, &created, &completedAt); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	doneAt, err := parseNullableTime(completedAt)
	if err != nil {
		return Task{}, err
	}
	out.GoalID = goalID.String
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	out.CompletedAt = doneAt
	return out, nil
}

func scanGoal(s scanner) (Goal, error) {
	var out Goal
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &created); err != nil {
		return Goal{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Goal{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
