// Package repomanager vends repository implementations bound to a database
// handle or transaction, so services can run several repository operations
// inside one atomic unit via dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/server/repositories/comments"
	"github.com/akulikov/boardd/internal/server/repositories/communities"
	"github.com/akulikov/boardd/internal/server/repositories/posts"
	"github.com/akulikov/boardd/internal/server/repositories/ratings"
	"github.com/akulikov/boardd/internal/server/repositories/users"
)

// RepositoryManager returns repositories bound to the provided DBTX, which
// can be either the root *sql.DB or an open transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Communities(db dbx.DBTX) communities.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Ratings(db dbx.DBTX) ratings.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
