package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/issuedtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps all state in process memory. The handle
// passed to the repository accessors is ignored. Transactions are
// serialised but not rolled back: a failing unit of work keeps the writes
// it already made.
type InMemoryRepositoryManager struct {
	txMu          sync.Mutex
	users         *users.MemoryRepository
	issuedTokens  *issuedtokens.MemoryRepository
	revokedTokens *revokedtokens.MemoryRepository
	tasks         *tasks.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		issuedTokens:  issuedtokens.NewMemoryRepository(),
		revokedTokens: revokedtokens.NewMemoryRepository(),
		tasks:         tasks.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Conn() dbx.DBTX {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) IssuedTokens(dbx.DBTX) issuedtokens.Repository {
	return m.issuedTokens
}

func (m *InMemoryRepositoryManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository {
	return m.revokedTokens
}

func (m *InMemoryRepositoryManager) Tasks(dbx.DBTX) tasks.Repository {
	return m.tasks
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
