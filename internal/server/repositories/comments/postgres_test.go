package comments

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	q := `(?s)INSERT\s+INTO\s+comments\s*\(article_id,\s*user_id,\s*content\).*RETURNING\s+id,\s*commented_at`
	mock.ExpectQuery(q).WithArgs("a-1", "u-1", "Great read").
		WillReturnRows(sqlmock.NewRows([]string{"id", "commented_at"}).AddRow("c-1", at))
	mock.ExpectQuery(q).WithArgs("gone", "u-1", "hm").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	got, err := repo.Create(context.Background(), &models.Comment{ArticleID: "a-1", UserID: "u-1", Content: "Great read"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)
	assert.True(t, got.CommentedAt.Equal(at))

	_, err = repo.Create(context.Background(), &models.Comment{ArticleID: "gone", UserID: "u-1", Content: "hm"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByArticle(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	later := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	mock.ExpectQuery(`(?s)FROM\s+comments\s+c\s+JOIN\s+users.*ORDER\s+BY\s+c\.commented_at\s+DESC`).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "article_id", "user_id", "name", "content", "commented_at"}).
			AddRow("c-2", "a-1", "u-2", "Bob", "second", later).
			AddRow("c-1", "a-1", "u-1", "Ann", "first", earlier))

	got, err := repo.ListByArticle(context.Background(), "a-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-2", got[0].ID)
	assert.Equal(t, "Bob", got[0].UserName)
	assert.Equal(t, "first", got[1].Content)
}
