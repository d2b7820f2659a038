// Package users persists account records.
package users

import (
	"context"

	"github.com/akulikov/boardd/internal/server/models"
)

// Repository is the credential store. Missing rows surface as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByRecoverToken(ctx context.Context, token string) (*models.User, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	SetActivation(ctx context.Context, id int64, activated bool, code string) error
	SetRecoverToken(ctx context.Context, id int64, token string) error
	Delete(ctx context.Context, id int64) error
}
