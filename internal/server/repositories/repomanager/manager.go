package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storykeeper/internal/dbx"
	"github.com/dmitrijs2005/storykeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/storykeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/storykeeper/internal/server/repositories/tombstones"
	"github.com/dmitrijs2005/storykeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same constructors for pooled connections and open transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Records(db dbx.DBTX) records.Repository
	Tombstones(db dbx.DBTX) tombstones.Repository
}
