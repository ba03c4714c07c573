package repomanager

import (
	"context"
	"database/sql"

	"github.com/evetodo/eve-server/internal/dbx"
	"github.com/evetodo/eve-server/internal/server/repositories/accounts"
	"github.com/evetodo/eve-server/internal/server/repositories/projects"
	"github.com/evetodo/eve-server/internal/server/repositories/sessions"
	"github.com/evetodo/eve-server/internal/server/repositories/todos"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Projects(db dbx.DBTX) projects.Repository
	Todos(db dbx.DBTX) todos.Repository
}
