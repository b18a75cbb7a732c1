package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `SELECT id, name, email, salt, verifier, role,
		 to_char(join_date, 'YYYY-MM-DD'), to_char(last_active, 'YYYY-MM-DD'),
		 current_streak, longest_streak, COALESCE(to_char(last_read_date, 'YYYY-MM-DD'), ''), created_at
		 FROM users`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, email, salt, verifier, role, join_date, last_active)
         VALUES ($1, $2, $3, $4, $5, $6::date, $7::date)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Salt, user.Verifier, user.Role,
		user.JoinDate.String(), user.LastActive.String()).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *PostgresRepository) LockByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var joinDate, lastActive, lastRead string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Salt, &user.Verifier, &user.Role,
		&joinDate, &lastActive,
		&user.Streak.CurrentStreak, &user.Streak.LongestStreak, &lastRead, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.JoinDate = reading.Date(joinDate)
	user.LastActive = reading.Date(lastActive)
	user.Streak.LastReadDate = reading.Date(lastRead)
	return user, nil
}

func (r *PostgresRepository) SaveActivity(ctx context.Context, id string, streak reading.StreakData, lastActive reading.Date) error {
	query :=
		`UPDATE users
		 SET current_streak = $2, longest_streak = $3, last_read_date = $4::date, last_active = $5::date
		 WHERE id = $1
		 `

	var lastRead any
	if !streak.LastReadDate.IsZero() {
		lastRead = streak.LastReadDate.String()
	}

	res, err := r.db.ExecContext(ctx, query, id, streak.CurrentStreak, streak.LongestStreak, lastRead, lastActive.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) GetCategories(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT category_id FROM user_categories
		 WHERE user_id = $1
		 ORDER BY category_id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		categories = append(categories, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return categories, nil
}

func (r *PostgresRepository) SetCategories(ctx context.Context, userID string, categories []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_categories WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for _, c := range categories {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO user_categories (user_id, category_id) VALUES ($1, $2)`, userID, c)
		if err != nil {
			if dbx.IsForeignKeyViolation(err) {
				return fmt.Errorf("unknown category %q: %w", c, common.ErrorValidation)
			}
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
