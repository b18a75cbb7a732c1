package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectProfile = `
	SELECT id, name, email, role, join_date, last_active, preferences, read_articles, streak_data
	FROM profiles`

func (r *SQLiteRepository) Create(ctx context.Context, p reading.Profile, c Credentials) error {
	st, err := reading.EncodeState(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, email, salt, verifier, role, join_date, last_active,
			preferences, read_articles, streak_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Email, c.Salt, c.Verifier, string(p.Role), p.JoinDate.String(), p.LastActive.String(),
		st.Preferences, st.ReadArticles, st.StreakData)
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (reading.Profile, error) {
	return r.get(ctx, selectProfile+` WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (reading.Profile, error) {
	return r.get(ctx, selectProfile+` WHERE email = ?`, email)
}

func (r *SQLiteRepository) get(ctx context.Context, query string, arg any) (reading.Profile, error) {
	var (
		p                    reading.Profile
		role, join, lastSeen string
		st                   reading.State
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.Email, &role, &join, &lastSeen, &st.Preferences, &st.ReadArticles, &st.StreakData)
	if errors.Is(err, sql.ErrNoRows) {
		return reading.Profile{}, common.ErrorNotFound
	}
	if err != nil {
		return reading.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}

	p.Role = reading.Role(role)
	p.JoinDate = reading.Date(join)
	p.LastActive = reading.Date(lastSeen)
	if err := reading.DecodeState(st, &p); err != nil {
		return reading.Profile{}, err
	}
	return p, nil
}

func (r *SQLiteRepository) Credentials(ctx context.Context, email string) (Credentials, error) {
	var c Credentials
	err := r.db.QueryRowContext(ctx, `SELECT salt, verifier FROM profiles WHERE email = ?`, email).Scan(&c.Salt, &c.Verifier)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, common.ErrorNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	return c, nil
}

// Save rewrites the mutable parts of p: preferences, read log, streak and
// last activity.
func (r *SQLiteRepository) Save(ctx context.Context, p reading.Profile) error {
	st, err := reading.EncodeState(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET last_active = ?, preferences = ?, read_articles = ?, streak_data = ?
		WHERE id = ?`,
		p.LastActive.String(), st.Preferences, st.ReadArticles, st.StreakData, p.ID)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
