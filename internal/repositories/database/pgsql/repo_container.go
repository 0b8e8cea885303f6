package pgsql

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository onto one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(pool),
		LedgerRepo:   newPgxLedgerRepository(pool),
		DocumentRepo: newPgxDocumentRepository(pool),
		FeedRepo:     newPgxFeedRepository(pool),
	}
}
