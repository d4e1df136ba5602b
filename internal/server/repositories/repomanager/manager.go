// Package repomanager produces repository instances bound to a database
// handle. Services request repositories per call, passing either the shared
// *sql.DB or a transaction, so the same repository code participates in
// whatever unit of work the caller is running.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/roles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Roles(db dbx.DBTX) roles.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
