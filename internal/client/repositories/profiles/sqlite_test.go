package profiles

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/readdaily/internal/client/client"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newProfile(id, email string) reading.Profile {
	return reading.NewProfile(id, "Ann", email, []string{"science", "technology"}, "2025-06-01")
}

func TestCreateAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p := newProfile("u1", "ann@example.com")
	require.NoError(t, r.Create(ctx, p, Credentials{Salt: []byte{1}, Verifier: []byte{2}}))

	byID, err := r.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)
	assert.Equal(t, reading.RoleReader, byID.Role)
	assert.Equal(t, reading.Date("2025-06-01"), byID.JoinDate)
	assert.Equal(t, []string{"science", "technology"}, byID.Preferences.Categories)

	byEmail, err := r.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	c, err := r.Credentials(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, c.Salt)
	assert.Equal(t, []byte{2}, c.Verifier)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, newProfile("u1", "ann@example.com"), Credentials{Salt: []byte{1}, Verifier: []byte{2}}))
	err := r.Create(ctx, newProfile("u2", "ann@example.com"), Credentials{Salt: []byte{1}, Verifier: []byte{2}})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.GetByID(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.Credentials(ctx, "missing@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSave_PersistsReadingState(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p := newProfile("u1", "ann@example.com")
	require.NoError(t, r.Create(ctx, p, Credentials{Salt: []byte{1}, Verifier: []byte{2}}))

	p, changed := reading.MarkRead(p, "a1", "2025-06-02")
	require.True(t, changed)
	p.LastActive = "2025-06-02"
	p.Preferences.Categories = []string{"health"}
	require.NoError(t, r.Save(ctx, p))

	got, err := r.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, reading.Date("2025-06-02"), got.LastActive)
	assert.Equal(t, []string{"health"}, got.Preferences.Categories)
	require.Len(t, got.ReadArticles, 1)
	assert.Equal(t, "a1", got.ReadArticles[0].ArticleID)
	assert.Equal(t, 1, got.Streak.CurrentStreak)
}

func TestSave_UnknownProfile(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	err := r.Save(context.Background(), newProfile("ghost", "ghost@example.com"))
	require.ErrorIs(t, err, common.ErrorNotFound)
}
