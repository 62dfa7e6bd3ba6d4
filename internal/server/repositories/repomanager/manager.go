// Package repomanager vends the server's repositories bound to a database
// handle, runs schema migrations and scopes units of work to a transaction.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/issuedtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// RepositoryManager is implemented by the PostgreSQL and in-memory backends.
// Repositories are obtained per handle: pass Conn() for standalone
// statements or the tx given to a WithTx callback.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() dbx.DBTX
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	IssuedTokens(db dbx.DBTX) issuedtokens.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Close() error
}
