package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (user_id, name, scheduled_at, priority, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Name, task.ScheduledAt, string(task.Priority), task.Completed).
		Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Task, error) {
	query := ` SELECT id, user_id, name, scheduled_at, priority, completed, created_at FROM tasks
		WHERE user_id=$1
		ORDER BY scheduled_at, created_at
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Task, error) {
	query := ` SELECT id, user_id, name, scheduled_at, priority, completed, created_at FROM tasks
		WHERE id=$1
		`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET name = $2, scheduled_at = $3, priority = $4
		WHERE id = $1
	`
	return r.execOne(ctx, query, task.ID, task.Name, task.ScheduledAt, string(task.Priority))
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id string) error {
	query := `
		UPDATE tasks SET completed = TRUE
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	query := `
		DELETE FROM tasks
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var (
		item     models.Task
		priority string
	)
	if err := s.Scan(&item.ID, &item.UserID, &item.Name, &item.ScheduledAt, &priority, &item.Completed, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Priority = models.Priority(priority)
	item.ScheduledAt = item.ScheduledAt.UTC()
	return &item, nil
}
