// Package repomanager vends repository implementations bound to a dbx.DBTX,
// so services can run the same repositories on a pool or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/articles"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/categories"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/comments"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/likes"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/reads"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Categories(db dbx.DBTX) categories.Repository
	Articles(db dbx.DBTX) articles.Repository
	Reads(db dbx.DBTX) reads.Repository
	Likes(db dbx.DBTX) likes.Repository
	Comments(db dbx.DBTX) comments.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
