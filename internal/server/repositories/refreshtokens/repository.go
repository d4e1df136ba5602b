// Package refreshtokens declares the repository contract for the single
// live refresh token each account holds.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type Repository interface {
	// Upsert stores token as the account's live refresh token, replacing
	// any previous one in a single atomic statement.
	Upsert(ctx context.Context, accountID string, token string) error

	// FindByToken looks a record up by exact token string. When lock is
	// true the row stays locked until the surrounding transaction ends.
	// Implementations should return a not-found error when the token is absent.
	FindByToken(ctx context.Context, token string, lock bool) (*models.RefreshToken, error)

	// Rotate replaces the account's live token value. Reports
	// common.ErrNotSignedIn when the account has no live record.
	Rotate(ctx context.Context, accountID string, token string) error
}
