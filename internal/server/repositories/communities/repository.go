// Package communities persists the boards grouping posts.
package communities

import (
	"context"

	"github.com/akulikov/boardd/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, community *models.Community) (*models.Community, error)
	GetByID(ctx context.Context, id int64) (*models.Community, error)
	List(ctx context.Context, offset, limit int64) ([]models.Community, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, title, description, thumbnail string) error
	Delete(ctx context.Context, id int64) error
}
