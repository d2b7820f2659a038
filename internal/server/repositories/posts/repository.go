// Package posts persists board posts and their counters.
package posts

import (
	"context"
	"time"

	"github.com/akulikov/boardd/internal/server/models"
)

// Repository stores posts. Counter updates (view count, rating tallies,
// comment count) are separate operations so services can combine them with
// related writes inside one transaction.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string, modifiedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	ListByCommunity(ctx context.Context, communityID, offset, limit int64) ([]models.Post, error)
	CountByCommunity(ctx context.Context, communityID int64) (int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
	ApplyRating(ctx context.Context, id int64, plus bool) error
	IncrementCommentCount(ctx context.Context, id int64) error
}
