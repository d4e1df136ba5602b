// Package accounts declares the repository contract for account rows.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type Repository interface {
	// Create inserts the account and returns it with storage-assigned fields set.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByEmail looks an account up by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID looks an account up by its identity.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
