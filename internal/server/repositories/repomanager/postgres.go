package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/server/migrations"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/articles"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/categories"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/comments"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/likes"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/reads"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories and applies
// the embedded schema.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Articles(db dbx.DBTX) articles.Repository {
	return articles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reads(db dbx.DBTX) reads.Repository {
	return reads.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Likes(db dbx.DBTX) likes.Repository {
	return likes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// OpenDB opens a pgx-backed pool for dsn and verifies connectivity.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
