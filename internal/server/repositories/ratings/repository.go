// Package ratings persists the like/dislike ledger. The table's composite
// primary key on (post_id, user_id) is the sole mechanism preventing
// double-rating; there is deliberately no lookup-before-insert API.
package ratings

import (
	"context"

	"github.com/akulikov/boardd/internal/server/models"
)

type Repository interface {
	// Create inserts a ledger row. A second cast by the same account on the
	// same post fails with common.ErrAlreadyRated regardless of direction.
	Create(ctx context.Context, rating *models.Rating) error
}
