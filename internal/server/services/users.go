package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/logging"
	"github.com/akulikov/boardd/internal/server/auth"
	"github.com/akulikov/boardd/internal/server/config"
	"github.com/akulikov/boardd/internal/server/mail"
	"github.com/akulikov/boardd/internal/server/models"
	"github.com/akulikov/boardd/internal/server/repositories/repomanager"
)

// UserService covers the account's self-service operations: profile
// changes, account deletion, and the password recovery flow.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	authService *AuthService
	hasher      *auth.PasswordHasher
	mailer      mail.Mailer
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	authService *AuthService, hasher *auth.PasswordHasher, mailer mail.Mailer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		config:      cfg,
		authService: authService,
		hasher:      hasher,
		mailer:      mailer,
		logger:      logger,
	}
}

// Update changes the username and/or password. The caller must confirm the
// current password; a mismatch yields ErrPasswordMismatch. On success both
// tokens are reissued so the session reflects the new profile, and the
// account state is read exactly once.
func (s *UserService) Update(ctx context.Context, userID int64, newUsername, newPassword, prevPassword string) (*models.User, *TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if !s.hasher.Verify(prevPassword, user.PasswordHash) {
		return nil, nil, common.ErrPasswordMismatch
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if newUsername != "" && newUsername != user.Username {
			if err := repo.UpdateUsername(ctx, userID, newUsername); err != nil {
				return fmt.Errorf("error updating username: %v", err)
			}
			user.Username = newUsername
		}
		if newPassword != "" {
			passwordHash, err := s.hasher.Hash(newPassword)
			if err != nil {
				return common.ErrorInternal
			}
			if err := repo.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
				return fmt.Errorf("error updating password: %v", err)
			}
			user.PasswordHash = passwordHash
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}

	pair, err := s.authService.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Delete removes the account after confirming its password. The schema
// cascades the deletion to the account's posts, comments, and rating
// ledger rows.
func (s *UserService) Delete(ctx context.Context, userID int64, password string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return common.ErrPasswordMismatch
	}
	if err := repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("error deleting user: %v", err)
	}
	return nil
}

// Recover stores a fresh single-use recovery token for the account behind
// email and mails a reset link pointing at the frontend.
func (s *UserService) Recover(ctx context.Context, email string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	token := uuid.NewString()
	if err := repo.SetRecoverToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("error storing recover token: %v", err)
	}

	link := fmt.Sprintf("%s/recover/password?token=%s", s.config.FrontendURL, token)
	return s.mailer.SendRecoverLink(ctx, user.Email, link)
}

// RecoverCheck resolves a recovery token to its account, so the frontend
// can show who is resetting before asking for the new password.
func (s *UserService) RecoverCheck(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	user, err := s.repomanager.Users(s.db).GetByRecoverToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// RecoverPassword sets a new password for the account behind a valid
// recovery token. The token is consumed by the same update.
func (s *UserService) RecoverPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.RecoverCheck(ctx, token)
	if err != nil {
		return err
	}
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repomanager.Users(s.db).UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("error resetting password: %v", err)
	}
	return nil
}
