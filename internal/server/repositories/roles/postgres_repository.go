package roles

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

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, role *models.Role) (*models.Role, bool, error) {

	query :=
		`INSERT INTO roles (id, name)
         VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, role.ID, role.Name).Scan(&role.ID)
	if err == nil {
		return role, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("db error: %w", err)
	}

	// the name already exists, fetch the surviving row
	existing, err := r.getByName(ctx, role.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *PostgresRepository) Assign(ctx context.Context, accountID string, roleID string) error {

	query :=
		`INSERT INTO role_assignments (account_id, role_id)
         VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, accountID, roleID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByAccount(ctx context.Context, accountID string) (*models.Role, error) {
	query :=
		`SELECT r.id, r.name FROM roles r
		 JOIN role_assignments ra ON ra.role_id = r.id
		 WHERE ra.account_id = $1
		 `

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&role.ID, &role.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return role, nil
}

func (r *PostgresRepository) getByName(ctx context.Context, name string) (*models.Role, error) {
	query :=
		`SELECT id, name FROM roles
		 WHERE name = $1
		 `

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return role, nil
}
