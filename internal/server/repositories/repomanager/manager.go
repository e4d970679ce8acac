package repomanager

import (
	"context"
	"database/sql"

	"github.com/skycastlabs/accounts/internal/dbx"
	"github.com/skycastlabs/accounts/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
