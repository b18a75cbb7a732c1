// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing JWTs
// plus server-stored refresh tokens.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/server/auth"
	"github.com/dmitrijs2005/readdaily/internal/server/config"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	Role         string
}

// RegisterInput is the onboarding request. Salt and verifier are derived by
// the client from the password; the server never sees the password.
type RegisterInput struct {
	Name       string   `validate:"required,max=100"`
	Email      string   `validate:"required,email,max=254"`
	Salt       []byte   `validate:"required"`
	Verifier   []byte   `validate:"required"`
	Categories []string `validate:"required,min=1"`
}

// SessionStarter is notified on every successful login.
type SessionStarter interface {
	Start(ctx context.Context, userID string) (*models.Session, error)
}

// UserService provides authentication-related operations:
// - Register: create users with their category subscriptions
// - Login: verify credentials, mint tokens and start a reading session
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	sessions                     SessionStarter
	clock                        Clock
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	adminEmails                  []string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, sessions SessionStarter, clock Clock, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		sessions:                     sessions,
		clock:                        clock,
		logger:                       logger.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		adminEmails:                  normalizeEmails(cfg.AdminEmails),
	}
}

func normalizeEmails(list []string) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, strings.ToLower(strings.TrimSpace(e)))
	}
	return out
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(s.clock.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Register validates the onboarding request and creates the user together
// with its category subscriptions. The e-mail is stored lower-cased.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	cats, err := checkCategories(ctx, s.repomanager.Categories(s.db), in.Categories)
	if err != nil {
		return nil, err
	}

	role := common.RoleReader
	if slices.Contains(s.adminEmails, in.Email) {
		role = common.RoleAdmin
	}

	today := s.clock.Today()
	user := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Salt:       in.Salt,
		Verifier:   in.Verifier,
		Role:       role,
		JoinDate:   today,
		LastActive: today,
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		u, err := repo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		if err := repo.SetCategories(ctx, u.ID, cats); err != nil {
			return fmt.Errorf("error storing categories: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetSalt returns the user's stored salt or a random salt if the user is absent,
// to avoid leaking existence through timing.
func (s *UserService) GetSalt(ctx context.Context, email string) ([]byte, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.getRandomSalt(), nil
		}
		return nil, common.ErrorInternal
	}
	return user.Salt, nil
}

// Login verifies the provided verifierCandidate against the stored verifier and,
// on success, returns a new TokenPair and opens a reading session.
func (s *UserService) Login(ctx context.Context, email string, verifierCandidate []byte) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !s.checkVerifier(user.Verifier, verifierCandidate) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, err
	}

	if s.sessions != nil {
		if _, err := s.sessions.Start(ctx, user.ID); err != nil {
			s.logger.Warn(ctx, "session start failed", "user_id", user.ID, "error", err)
		}
	}
	return pair, nil
}

// PurgeExpiredTokens removes refresh tokens that can no longer be used.
func (s *UserService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("error purging refresh tokens: %w", err)
	}
	return n, nil
}

// --- helpers below ---

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (s *UserService) getRandomSalt() []byte { return common.GenerateRandByteArray(32) }

func (s *UserService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) checkVerifier(verifier []byte, candidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, Role: user.Role}, nil
}
