// Package services contains server-side business logic. This file implements
// AuthService: registration, e-mail activation, login, and minting/refreshing
// the JWT pair.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/logging"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/config"
	"github.com/akulikov/boardd/internal/server/mail"
	"github.com/akulikov/boardd/internal/server/models"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token. AccessExpiresAt is returned to clients so they can schedule a
// refresh ahead of time.
type TokenPair struct {
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// AuthService handles the account lifecycle up to a valid session:
// - Register: create an inactive account and mail the activation code
// - Activate: confirm the mailed code
// - Login: verify credentials and mint the token pair
// - Refresh: re-check the account and mint a fresh access token
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
	mailer      mail.Mailer
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	tokens *auth.TokenService, hasher *auth.PasswordHasher, mailer mail.Mailer, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		config:      cfg,
		tokens:      tokens,
		hasher:      hasher,
		mailer:      mailer,
		logger:      logger,
	}
}

// Register creates an inactive account and mails its activation code. A
// failed mail delivery does not undo the registration; the code can be
// re-sent later.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	code, err := common.MakeRandDigits(s.config.ActivationCodeLength)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		PasswordHash:   passwordHash,
		Role:           models.RoleUser,
		Activated:      false,
		ActivationCode: code,
		CreatedAt:      time.Now(),
	}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	if err := s.mailer.SendActivationCode(ctx, u.Email, code); err != nil {
		s.logger.Warn(ctx, "failed to send activation email", "email", u.Email, "error", err)
	}
	return u, nil
}

// SendActivationEmail regenerates the activation code for a not-yet-active
// account and mails it again.
func (s *AuthService) SendActivationEmail(ctx context.Context, email string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if user.Activated {
		return common.ErrorUnauthorized
	}

	code, err := common.MakeRandDigits(s.config.ActivationCodeLength)
	if err != nil {
		return common.ErrorInternal
	}
	if err := repo.SetActivation(ctx, user.ID, false, code); err != nil {
		return fmt.Errorf("error storing activation code: %v", err)
	}
	return s.mailer.SendActivationCode(ctx, user.Email, code)
}

// Activate confirms the mailed code and switches the account to active.
// A wrong code is indistinguishable from an unknown account.
func (s *AuthService) Activate(ctx context.Context, email, code string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	if user.Activated || code == "" || user.ActivationCode != code {
		return common.ErrorUnauthorized
	}
	if err := repo.SetActivation(ctx, user.ID, true, ""); err != nil {
		return fmt.Errorf("error activating user: %v", err)
	}
	return nil
}

// Login verifies credentials against the store and, on success, returns the
// account and a new token pair. Accounts that never confirmed their
// activation code cannot log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, common.ErrorUnauthorized
	}
	if !user.Activated {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh re-reads the account behind a verified refresh token and mints a
// new access token from its current state, so role or username changes take
// effect at the next refresh. The refresh token itself is not rotated and
// there is no server-side revocation list: a refresh token stays usable
// until it expires, and logout only clears the client cookie.
func (s *AuthService) Refresh(ctx context.Context, ident *auth.Identity) (string, time.Time, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", time.Time{}, common.ErrorUnauthorized
		}
		return "", time.Time{}, common.ErrorInternal
	}
	if !user.Activated {
		return "", time.Time{}, common.ErrorUnauthorized
	}

	access, expiresAt, err := s.tokens.IssueAccess(identityOf(user))
	if err != nil {
		return "", time.Time{}, common.ErrorInternal
	}
	return access, expiresAt, nil
}

// IssueTokenPair mints both tokens for user.
func (s *AuthService) IssueTokenPair(user *models.User) (*TokenPair, error) {
	ident := identityOf(user)
	access, expiresAt, err := s.tokens.IssueAccess(ident)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.tokens.IssueRefresh(ident)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, AccessExpiresAt: expiresAt, RefreshToken: refresh}, nil
}

func identityOf(user *models.User) auth.Identity {
	return auth.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
}
