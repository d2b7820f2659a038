package ratings

import (
	"context"
	"fmt"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rating *models.Rating) error {
	query :=
		`INSERT INTO post_ratings (post_id, user_id, plus, created_at)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, rating.PostID, rating.UserID, rating.Plus, rating.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyRated
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
