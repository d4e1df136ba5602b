// Package roles declares the repository contract for role rows and the
// one-per-account role assignments.
package roles

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent inserts the role unless another row already holds its
	// name, and returns the surviving row. The flag reports whether this
	// call created it: under concurrent registration the unique constraint
	// on the name guarantees exactly one caller observes true.
	CreateIfAbsent(ctx context.Context, role *models.Role) (*models.Role, bool, error)

	// Assign binds an account to a role. Each account gets exactly one
	// assignment, enforced by the schema.
	Assign(ctx context.Context, accountID string, roleID string) error

	// FindByAccount resolves the role assigned to an account.
	// Returns a not-found error when the account has no assignment.
	FindByAccount(ctx context.Context, accountID string) (*models.Role, error)
}
