package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, accountID string, token string) error {

	query :=
		`INSERT INTO refresh_tokens (account_id, token)
         VALUES ($1, $2)
		 ON CONFLICT (account_id) DO UPDATE SET token = EXCLUDED.token, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, accountID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string, lock bool) (*models.RefreshToken, error) {
	query :=
		`SELECT account_id, token, updated_at FROM refresh_tokens
		 WHERE token = $1
		 `
	if lock {
		query += " FOR UPDATE"
	}

	record := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&record.AccountID, &record.Token, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) Rotate(ctx context.Context, accountID string, token string) error {

	query :=
		`UPDATE refresh_tokens SET token = $2, updated_at = now()
		 WHERE account_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, accountID, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotSignedIn
	}

	return nil
}
