package issuedtokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, accessToken string) error {
	query := `
		INSERT INTO issued_tokens (user_id, access_token)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, accessToken); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM issued_tokens
		WHERE user_id = $1
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
