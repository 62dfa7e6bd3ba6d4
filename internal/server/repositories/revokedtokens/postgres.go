package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the literal token string. The primary key on token turns a
// concurrent second sign-out into common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token, expires_at)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, token, expiresAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %w", common.ErrAlreadyExists, err)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Exists checks membership with a single indexed lookup.
func (r *PostgresRepository) Exists(ctx context.Context, token string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// DeleteExpired removes rows for tokens that can no longer pass the expiry
// check anyway.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM revoked_tokens
		WHERE expires_at < $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
