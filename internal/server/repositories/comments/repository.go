// Package comments persists post comments.
package comments

import (
	"context"
	"time"

	"github.com/akulikov/boardd/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, id int64, content string, modifiedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	ListByPost(ctx context.Context, postID, offset, limit int64) ([]models.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
}
